package message

import "sync/atomic"

// Subscription represents a registered message handler.
type Subscription interface {
	// ID returns the unique subscription identifier.
	ID() uint64

	// IsActive returns true if the subscription still receives messages.
	IsActive() bool

	// Cancel permanently stops delivery to this subscription.
	Cancel()
}

var subscriptionID atomic.Uint64

// subscription is the default Subscription implementation.
type subscription struct {
	id        uint64
	handler   Handler
	cancelled atomic.Bool
}

func newSubscription(h Handler) *subscription {
	return &subscription{
		id:      subscriptionID.Add(1),
		handler: h,
	}
}

// ID returns the unique subscription identifier.
func (s *subscription) ID() uint64 {
	return s.id
}

// IsActive returns true if the subscription has not been cancelled.
func (s *subscription) IsActive() bool {
	return !s.cancelled.Load()
}

// Cancel permanently stops delivery.
func (s *subscription) Cancel() {
	s.cancelled.Store(true)
}
