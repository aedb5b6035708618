package session

import (
	"errors"
	"testing"

	"clack/internal/app/wire"
)

// fakeSender records every outbound frame and can be told to fail.
type fakeSender struct {
	frames []string
	err    error
}

func (f *fakeSender) Send(text string) error {
	if f.err != nil {
		return f.err
	}
	f.frames = append(f.frames, text)
	return nil
}

func usersEnvelope(names ...string) wire.Envelope {
	return wire.NewUsers(names)
}

func messageEnvelope(t *testing.T, from, text string) wire.Envelope {
	t.Helper()

	payload := `{"from":"` + from + `","message":"` + text + `"}`
	return wire.Envelope{MessageType: wire.TypeMessage, Data: &payload}
}

func TestNewSendsRegister(t *testing.T) {
	sender := &fakeSender{}
	New("alice", sender)

	if len(sender.frames) != 1 {
		t.Fatalf("expected exactly one outbound frame, got %d", len(sender.frames))
	}

	env, err := wire.Decode(sender.frames[0])
	if err != nil {
		t.Fatalf("register frame not decodable: %v", err)
	}
	if env.MessageType != wire.TypeRegister {
		t.Errorf("register frame type = %q, want %q", env.MessageType, wire.TypeRegister)
	}
	if env.Data == nil || *env.Data != "alice" {
		t.Errorf("register frame data = %v, want alice", env.Data)
	}
}

func TestNewToleratesSendFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection lost")}

	s := New("alice", sender)
	if s == nil {
		t.Fatal("New returned nil on send failure")
	}

	// The session must stay usable after the failed announce.
	if changed := s.Apply(usersEnvelope("alice")); !changed {
		t.Error("Apply(users) after failed register = false, want true")
	}
}

func TestApplyUsersReplacesRoster(t *testing.T) {
	s := New("alice", &fakeSender{})

	sequences := [][]string{
		{"alice", "bob"},
		{"carol"},
		{"dave", "alice", "erin"},
	}

	for _, names := range sequences {
		if changed := s.Apply(usersEnvelope(names...)); !changed {
			t.Fatalf("Apply(users %v) = false, want true", names)
		}

		roster := s.State().Roster
		if len(roster) != len(names) {
			t.Fatalf("roster size = %d, want %d", len(roster), len(names))
		}
		for i, name := range names {
			if roster[i].Name != name {
				t.Errorf("roster[%d].Name = %q, want %q", i, roster[i].Name, name)
			}
			want := "https://avatars.dicebear.com/api/adventurer-neutral/" + name + ".svg"
			if roster[i].AvatarURL != want {
				t.Errorf("roster[%d].AvatarURL = %q, want %q", i, roster[i].AvatarURL, want)
			}
		}
	}
}

func TestApplyUsersWithoutDataArrayEmptiesRoster(t *testing.T) {
	s := New("alice", &fakeSender{})
	s.Apply(usersEnvelope("alice", "bob"))

	if changed := s.Apply(wire.Envelope{MessageType: wire.TypeUsers}); !changed {
		t.Fatal("Apply(users without dataArray) = false, want true")
	}
	if roster := s.State().Roster; len(roster) != 0 {
		t.Errorf("roster = %v, want empty", roster)
	}
}

func TestApplyMessageAppendsInOrder(t *testing.T) {
	s := New("alice", &fakeSender{})

	inputs := []wire.ChatMessage{
		{From: "bob", Message: "hi"},
		{From: "alice", Message: "hello"},
		{From: "bob", Message: "how are you"},
	}

	for i, in := range inputs {
		if changed := s.Apply(messageEnvelope(t, in.From, in.Message)); !changed {
			t.Fatalf("Apply(message %d) = false, want true", i)
		}

		msgs := s.State().Messages
		if len(msgs) != i+1 {
			t.Fatalf("message count = %d, want %d", len(msgs), i+1)
		}
		for j := 0; j <= i; j++ {
			if msgs[j] != inputs[j] {
				t.Errorf("messages[%d] = %+v, want %+v", j, msgs[j], inputs[j])
			}
		}
	}
}

func TestApplyMessageDropsBadPayload(t *testing.T) {
	s := New("alice", &fakeSender{})
	s.Apply(messageEnvelope(t, "bob", "hi"))

	bad := `{"from":`
	if changed := s.Apply(wire.Envelope{MessageType: wire.TypeMessage, Data: &bad}); changed {
		t.Error("Apply(malformed message) = true, want false")
	}
	if changed := s.Apply(wire.Envelope{MessageType: wire.TypeMessage}); changed {
		t.Error("Apply(message without data) = true, want false")
	}

	// The session must keep processing subsequent events.
	if changed := s.Apply(messageEnvelope(t, "carol", "still here")); !changed {
		t.Fatal("Apply(message) after dropped payload = false, want true")
	}

	msgs := s.State().Messages
	if len(msgs) != 2 {
		t.Fatalf("message count = %d, want 2", len(msgs))
	}
	if msgs[1].From != "carol" {
		t.Errorf("messages[1].From = %q, want carol", msgs[1].From)
	}
}

func TestApplyIgnoresUnhandledType(t *testing.T) {
	s := New("alice", &fakeSender{})

	if changed := s.Apply(wire.NewRegister("bob")); changed {
		t.Error("Apply(register) = true, want false")
	}

	state := s.State()
	if len(state.Roster) != 0 || len(state.Messages) != 0 {
		t.Errorf("state mutated by unhandled type: %+v", state)
	}
}

func TestHandleFrameDropsUndecodable(t *testing.T) {
	s := New("alice", &fakeSender{})

	if changed := s.HandleFrame("not json at all"); changed {
		t.Error("HandleFrame(garbage) = true, want false")
	}

	frame, err := wire.Encode(usersEnvelope("bob"))
	if err != nil {
		t.Fatalf("Encode unexpected error: %v", err)
	}
	if changed := s.HandleFrame(frame); !changed {
		t.Error("HandleFrame(users) after garbage = false, want true")
	}
}

func TestSubmitBlankInputIsNoop(t *testing.T) {
	sender := &fakeSender{}
	s := New("alice", sender)
	registered := len(sender.frames)

	for _, input := range []string{"", "  ", "\t\n"} {
		if accepted := s.Submit(input); accepted {
			t.Errorf("Submit(%q) = true, want false", input)
		}
	}

	if len(sender.frames) != registered {
		t.Errorf("blank submits produced %d outbound frames", len(sender.frames)-registered)
	}
}

func TestSubmitSendsRawInput(t *testing.T) {
	sender := &fakeSender{}
	s := New("alice", sender)

	if accepted := s.Submit("  hello  "); !accepted {
		t.Fatal("Submit = false, want true")
	}

	if len(sender.frames) != 2 {
		t.Fatalf("expected register + chat frames, got %d", len(sender.frames))
	}

	env, err := wire.Decode(sender.frames[1])
	if err != nil {
		t.Fatalf("chat frame not decodable: %v", err)
	}
	if env.MessageType != wire.TypeMessage {
		t.Errorf("chat frame type = %q, want %q", env.MessageType, wire.TypeMessage)
	}
	if env.Data == nil || *env.Data != "  hello  " {
		t.Errorf("chat frame data = %v, want raw untrimmed input", env.Data)
	}

	// No optimistic local append; the message arrives via the server echo.
	if msgs := s.State().Messages; len(msgs) != 0 {
		t.Errorf("Submit appended locally: %+v", msgs)
	}
}

func TestSubmitReportsAcceptedOnSendFailure(t *testing.T) {
	sender := &fakeSender{}
	s := New("alice", sender)
	sender.err = errors.New("connection lost")

	if accepted := s.Submit("hello"); !accepted {
		t.Error("Submit on send failure = false, want true (composer still clears)")
	}
}

func TestStateReturnsSnapshot(t *testing.T) {
	s := New("alice", &fakeSender{})
	s.Apply(usersEnvelope("alice", "bob"))
	s.Apply(messageEnvelope(t, "bob", "hi"))

	snapshot := s.State()
	s.Apply(usersEnvelope("carol"))
	s.Apply(messageEnvelope(t, "carol", "later"))

	if len(snapshot.Roster) != 2 || snapshot.Roster[0].Name != "alice" {
		t.Errorf("snapshot roster mutated: %+v", snapshot.Roster)
	}
	if len(snapshot.Messages) != 1 || snapshot.Messages[0].From != "bob" {
		t.Errorf("snapshot messages mutated: %+v", snapshot.Messages)
	}
}
