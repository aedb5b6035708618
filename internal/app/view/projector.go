/*
Package view computes the read-only projections the renderer displays: the
ordered user list and the ordered message thread.

Projections are pure functions of the session state, recomputed in full after
every signaled change. Nothing in this package mutates or caches anything.
*/
package view

import (
	"fmt"
	"strings"

	"clack/internal/app/session"
)

// fallbackAvatarTemplate is the name-seeded initials avatar used for message
// senders that are absent from the current roster.
const fallbackAvatarTemplate = "https://avatars.dicebear.com/api/initials/%s.svg"

// imageSuffix marks a message for image rendering. This is a literal,
// case-sensitive suffix match on the message text, not a MIME check.
const imageSuffix = ".gif"

// RosterEntry is one row of the user-list projection.
type RosterEntry struct {
	Name      string
	AvatarURL string
}

// ThreadEntry is one row of the message-thread projection.
type ThreadEntry struct {
	From      string
	Message   string
	AvatarURL string

	// IsImage flags the message text for image rendering instead of plain text.
	IsImage bool
}

// View holds both projections of one state snapshot.
type View struct {
	Roster []RosterEntry
	Thread []ThreadEntry
}

// Project recomputes both projections from the given state. Roster order is
// the server-provided order; thread order is message arrival order. Each
// thread entry resolves its sender's avatar against the current roster by
// exact name match, falling back to the initials template when absent.
func Project(state session.ClientState) View {
	v := View{
		Roster: make([]RosterEntry, 0, len(state.Roster)),
		Thread: make([]ThreadEntry, 0, len(state.Messages)),
	}

	for _, profile := range state.Roster {
		v.Roster = append(v.Roster, RosterEntry{
			Name:      profile.Name,
			AvatarURL: profile.AvatarURL,
		})
	}

	for _, msg := range state.Messages {
		v.Thread = append(v.Thread, ThreadEntry{
			From:      msg.From,
			Message:   msg.Message,
			AvatarURL: resolveAvatar(state.Roster, msg.From),
			IsImage:   strings.HasSuffix(msg.Message, imageSuffix),
		})
	}

	return v
}

// resolveAvatar looks the sender up in the roster by exact name. Senders no
// longer (or never) on the roster get the deterministic fallback avatar.
func resolveAvatar(roster []session.UserProfile, from string) string {
	for _, profile := range roster {
		if profile.Name == from {
			return profile.AvatarURL
		}
	}
	return fmt.Sprintf(fallbackAvatarTemplate, from)
}
