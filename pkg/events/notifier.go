// Package events provides a small named-event registry used by the timebrush
// core to publish selection notifications without knowing who listens.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives the arguments passed to RaiseEvent.
type Handler func(args ...any)

// Subscription is the handle returned by On. It identifies one registration;
// the same handler registered twice yields two independent subscriptions.
type Subscription struct {
	id      uuid.UUID
	name    string
	handler Handler
	n       *Notifier
}

// ID returns the unique identifier of this registration.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Destroy removes exactly this registration. Calling it more than once is safe.
func (s *Subscription) Destroy() {
	if s == nil || s.n == nil {
		return
	}
	s.n.Off(s.name, s)
}

// Notifier is a publish/subscribe registry keyed by event name. The zero
// value is ready to use and it is safe for concurrent use.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[string][]*Subscription
}

// New returns an empty Notifier.
func New() *Notifier {
	return &Notifier{}
}

// On registers handler for the named event and returns its subscription.
// A nil handler is ignored and yields a subscription whose Destroy is a no-op.
func (n *Notifier) On(name string, handler Handler) *Subscription {
	sub := &Subscription{id: uuid.New(), name: name, handler: handler}
	if handler == nil {
		return sub
	}
	sub.n = n

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = make(map[string][]*Subscription)
	}
	n.listeners[name] = append(n.listeners[name], sub)
	return sub
}

// Off removes the registration sub from the named event. It is a no-op if
// the registration is absent. Registrations are keyed by the Subscription
// returned from On rather than by handler, since Go funcs are not comparable.
func (n *Notifier) Off(name string, sub *Subscription) {
	if sub == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	subs := n.listeners[name]
	for i, s := range subs {
		if s.id != sub.id {
			continue
		}
		// Copy instead of splicing in place so snapshots taken by an
		// in-progress RaiseEvent keep their view.
		next := make([]*Subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		if len(next) == 0 {
			delete(n.listeners, name)
		} else {
			n.listeners[name] = next
		}
		return
	}
}

// RaiseEvent synchronously invokes every handler registered for name, in
// registration order, with args. Handlers run on a snapshot taken before the
// first call, so a handler may remove itself (or others) while being raised.
func (n *Notifier) RaiseEvent(name string, args ...any) {
	n.mu.RLock()
	subs := n.listeners[name]
	n.mu.RUnlock()

	for _, s := range subs {
		s.handler(args...)
	}
}

// Count returns the number of handlers registered for name.
func (n *Notifier) Count(name string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.listeners[name])
}
