package message

import (
	"sync"
	"sync/atomic"
)

// Bus is the process-wide message channel. Publish delivers to every active
// subscriber synchronously, in subscription order, at most once per emission.
type Bus interface {
	// Publish delivers a message to all active subscribers.
	Publish(msg Message)

	// Subscribe registers a handler and returns its subscription.
	Subscribe(h Handler) Subscription

	// SubscribeFunc registers a function handler.
	SubscribeFunc(fn func(Message)) Subscription

	// Unsubscribe cancels and removes a subscription.
	Unsubscribe(sub Subscription) error

	// Stats returns delivery counters.
	Stats() Stats
}

// Stats holds bus delivery counters.
type Stats struct {
	// Published is the total number of published messages.
	Published uint64

	// Delivered is the total number of handler deliveries.
	Delivered uint64

	// Subscribers is the number of active subscriptions.
	Subscribers int
}

// bus is the default Bus implementation.
type bus struct {
	mu   sync.RWMutex
	subs []*subscription

	published atomic.Uint64
	delivered atomic.Uint64
}

// NewBus creates a new message bus.
func NewBus() Bus {
	return &bus{}
}

// Publish delivers the message to every active subscriber in subscription
// order. Handlers run in the caller's goroutine.
func (b *bus) Publish(msg Message) {
	b.mu.RLock()
	subs := make([]*subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	b.published.Add(1)

	for _, sub := range subs {
		if !sub.IsActive() {
			continue
		}
		sub.handler.Handle(msg)
		b.delivered.Add(1)
	}
}

// Subscribe registers a handler. Handlers with lifecycle tied to a UI
// surface should keep the subscription and cancel it on teardown.
func (b *bus) Subscribe(h Handler) Subscription {
	sub := newSubscription(h)

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return sub
}

// SubscribeFunc registers a function handler.
func (b *bus) SubscribeFunc(fn func(Message)) Subscription {
	return b.Subscribe(HandlerFunc(fn))
}

// Unsubscribe cancels and removes a subscription.
func (b *bus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return ErrInvalidSubscription
	}
	sub.Cancel()

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, existing := range b.subs {
		if existing.ID() == sub.ID() {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Stats returns current delivery counters.
func (b *bus) Stats() Stats {
	b.mu.RLock()
	active := 0
	for _, sub := range b.subs {
		if sub.IsActive() {
			active++
		}
	}
	b.mu.RUnlock()

	return Stats{
		Published:   b.published.Load(),
		Delivered:   b.delivered.Load(),
		Subscribers: active,
	}
}
