// Package notify provides change notification for engine state.
//
// Hosts subscribe to be told when derived state changes: the
// has-content flag flipping, the caret being placed, or the options
// snapshot being swapped by a live reload. Delivery is synchronous, in
// subscription order, inside the render cycle that produced the change.
package notify

import "sync"

// ChangeType categorizes an engine state change.
type ChangeType int

const (
	// ChangeContent fires when the has-content flag flips.
	ChangeContent ChangeType = iota

	// ChangeCaret fires when a render cycle places the caret.
	ChangeCaret

	// ChangeOptions fires when the options snapshot is replaced.
	ChangeOptions
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeContent:
		return "content"
	case ChangeCaret:
		return "caret"
	case ChangeOptions:
		return "options"
	default:
		return "unknown"
	}
}

// Change is one engine state change.
type Change struct {
	Type     ChangeType
	OldValue any
	NewValue any
}

// Observer is called with each change it subscribed to.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
		s.notifier = nil
	}
}

// Notifier manages observer subscriptions and delivers changes.
type Notifier struct {
	mu        sync.Mutex
	observers []entry
	nextID    uint64
}

type entry struct {
	id       uint64
	typ      ChangeType
	allTypes bool
	observer Observer
}

// New creates a notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for all change types.
func (n *Notifier) Subscribe(obs Observer) *Subscription {
	return n.add(entry{allTypes: true, observer: obs})
}

// SubscribeType registers an observer for one change type.
func (n *Notifier) SubscribeType(typ ChangeType, obs Observer) *Subscription {
	return n.add(entry{typ: typ, observer: obs})
}

func (n *Notifier) add(e entry) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.nextID++
	e.id = n.nextID
	n.observers = append(n.observers, e)
	return &Subscription{id: e.id, notifier: n}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, e := range n.observers {
		if e.id == id {
			n.observers = append(n.observers[:i], n.observers[i+1:]...)
			return
		}
	}
}

// Publish delivers a change to all matching observers, synchronously,
// in subscription order.
func (n *Notifier) Publish(change Change) {
	n.mu.Lock()
	matched := make([]Observer, 0, len(n.observers))
	for _, e := range n.observers {
		if e.allTypes || e.typ == change.Type {
			matched = append(matched, e.observer)
		}
	}
	n.mu.Unlock()

	for _, obs := range matched {
		obs(change)
	}
}
