/*
Package session contains the client-side protocol state machine for a chat
connection.

This file defines the state owned by the Session: the live roster and the
append-only message log.
*/
package session

import (
	"fmt"

	"clack/internal/app/wire"
)

// rosterAvatarTemplate is the fixed deterministic-art avatar template applied
// to every roster entry, seeded with the user's display name.
const rosterAvatarTemplate = "https://avatars.dicebear.com/api/adventurer-neutral/%s.svg"

// UserProfile represents one roster entry. AvatarURL is a pure function of
// Name; it is derived once, when the entry is built from a users envelope.
type UserProfile struct {
	// Name is the display name of the user, as provided by the server.
	Name string

	// AvatarURL is the derived avatar image location for this user.
	AvatarURL string
}

// ClientState is the full state owned by the Session. The roster is replaced
// wholesale on every users envelope; the message log is append-only and
// ordered by arrival.
type ClientState struct {
	// Roster is the current set of connected users, in server-provided order.
	Roster []UserProfile

	// Messages is the session's chat log, in arrival order.
	Messages []wire.ChatMessage
}

// newProfile builds a roster entry for the given display name, deriving its
// avatar from the fixed template.
func newProfile(name string) UserProfile {
	return UserProfile{
		Name:      name,
		AvatarURL: fmt.Sprintf(rosterAvatarTemplate, name),
	}
}
