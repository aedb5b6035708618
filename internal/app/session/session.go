/*
Package session contains the client-side protocol state machine for a chat
connection.

This file defines the Session struct, which consumes decoded envelopes and
local submit intents, maintains the roster and message log, and reports
whether each event changed state so the renderer knows when to recompute its
projections.
*/
package session

import (
	"strings"

	"github.com/rs/zerolog"

	"clack/internal/app/wire"
	"clack/internal/pkg/logx"
)

// Sender is the outbound half of the transport boundary. Send delivers one
// text frame best-effort; the session never retries a failed send.
type Sender interface {
	Send(text string) error
}

// Session is the protocol state machine. It exclusively owns its ClientState;
// events must be delivered one at a time, from a single goroutine.
type Session struct {
	// username is the local identity, fixed at construction.
	username string

	// sender delivers outbound frames to the transport.
	sender Sender

	// state is the roster and message log derived from inbound envelopes.
	state ClientState

	// structured logger with session context.
	logger zerolog.Logger
}

// New constructs a Session for the given local identity and immediately
// announces it by sending a register envelope through the transport. The
// announce is fire-and-forget: a send failure is logged and otherwise
// ignored, and construction never blocks on it.
func New(username string, sender Sender) *Session {
	sessionLogger := logx.Logger().With().
		Str("username", username).
		Logger()

	s := &Session{
		username: username,
		sender:   sender,
		logger:   sessionLogger,
	}

	text, err := wire.Encode(wire.NewRegister(username))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode register envelope")
		return s
	}

	if err := s.sender.Send(text); err != nil {
		s.logger.Warn().Err(err).Msg("Best-effort register announce failed")
	} else {
		s.logger.Debug().Msg("Register envelope sent")
	}

	return s
}

// Username returns the local identity the session was constructed with.
func (s *Session) Username() string {
	return s.username
}

// HandleFrame decodes one inbound transport frame and applies it. A frame
// that is not a well-formed envelope is dropped with a warning; the session
// stays live for subsequent frames. The return value reports whether state
// changed and a re-render is due.
func (s *Session) HandleFrame(text string) bool {
	env, err := wire.Decode(text)
	if err != nil {
		s.logger.Warn().Err(err).Str("frame", text).Msg("Dropping undecodable inbound frame")
		return false
	}

	return s.Apply(env)
}

// Apply consumes one decoded envelope and returns whether state changed.
//
// A users envelope replaces the roster wholesale, preserving server order.
// A message envelope appends its decoded chat payload to the log; a payload
// that fails to decode is dropped with a warning rather than killing the
// session. Any other tag is a forward-compatible no-op.
func (s *Session) Apply(env wire.Envelope) bool {
	switch env.MessageType {
	case wire.TypeUsers:
		roster := make([]UserProfile, 0, len(env.DataArray))
		for _, name := range env.DataArray {
			roster = append(roster, newProfile(name))
		}
		s.state.Roster = roster

		s.logger.Debug().Int("user_count", len(roster)).Msg("Roster replaced")
		return true

	case wire.TypeMessage:
		msg, err := wire.DecodeChatMessage(env.Data)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Dropping message envelope with bad chat payload")
			return false
		}

		s.state.Messages = append(s.state.Messages, msg)

		s.logger.Debug().Str("from", msg.From).Msg("Message appended")
		return true

	default:
		s.logger.Debug().Str("msg_type", string(env.MessageType)).Msg("Ignoring envelope with unhandled type")
		return false
	}
}

// Submit handles the local submit-message intent. Input that is blank after
// trimming is a guarded no-op and returns false, leaving the composer
// untouched. Otherwise the raw, untrimmed text is sent as a message envelope
// and Submit returns true so the caller clears the composer — on send
// failure as well as success, since the send is best-effort and never
// surfaced to the user. The sent message is not appended locally; it becomes
// visible only when the server echoes it back on the inbound path.
func (s *Session) Submit(input string) bool {
	if strings.TrimSpace(input) == "" {
		return false
	}

	text, err := wire.Encode(wire.NewChat(input))
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode chat envelope")
		return true
	}

	if err := s.sender.Send(text); err != nil {
		s.logger.Warn().Err(err).Msg("Chat message send failed")
	}

	return true
}

// State returns a snapshot copy of the session state for projection. The
// caller never observes later mutations of the live slices.
func (s *Session) State() ClientState {
	snapshot := ClientState{
		Roster:   make([]UserProfile, len(s.state.Roster)),
		Messages: make([]wire.ChatMessage, len(s.state.Messages)),
	}

	copy(snapshot.Roster, s.state.Roster)
	copy(snapshot.Messages, s.state.Messages)

	return snapshot
}
