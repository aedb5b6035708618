/*
Package relay provides the process-wide frame relay that decouples the
transport from its consumers.

Every inbound transport frame is published once and delivered to every
current subscriber. The relay is an explicit value with process-wide
lifetime, owned and wired by main; there is no hidden package-level state.
*/
package relay

import (
	"sync"

	"github.com/google/uuid"

	"clack/internal/pkg/logx"
)

// Token identifies one subscription for later release.
type Token string

// subscriber pairs a subscription token with its frame handler.
type subscriber struct {
	token   Token
	handler func(string)
}

// Relay fans inbound text frames out to every subscriber.
type Relay struct {
	// mu protects concurrent access to the subscribers list.
	mu sync.RWMutex

	// subscribers holds the active subscriptions, in subscription order.
	subscribers []subscriber
}

// New constructs an empty Relay.
func New() *Relay {
	return &Relay{}
}

// Subscribe registers a handler for every subsequently published frame and
// returns the token that releases it. Handlers run synchronously on the
// publisher's goroutine, in subscription order.
func (r *Relay) Subscribe(handler func(string)) Token {
	token := Token(uuid.NewString())

	r.mu.Lock()
	r.subscribers = append(r.subscribers, subscriber{token: token, handler: handler})
	r.mu.Unlock()

	return token
}

// Unsubscribe releases the subscription identified by the token. Releasing an
// unknown or already-released token is a no-op.
func (r *Relay) Unsubscribe(token Token) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, sub := range r.subscribers {
		if sub.token == token {
			r.subscribers = append(r.subscribers[:i], r.subscribers[i+1:]...)
			return
		}
	}

	logx.Warn("Unsubscribe for unknown or already released token", "token", string(token))
}

// Publish delivers one frame to every current subscriber. Delivery is
// synchronous, so frames reach each subscriber in the order they were
// published.
func (r *Relay) Publish(text string) {
	r.mu.RLock()
	subs := make([]subscriber, len(r.subscribers))
	copy(subs, r.subscribers)
	r.mu.RUnlock()

	for _, sub := range subs {
		sub.handler(text)
	}
}
