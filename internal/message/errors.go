package message

import "errors"

// Bus errors.
var (
	// ErrInvalidSubscription indicates a nil subscription was passed.
	ErrInvalidSubscription = errors.New("message: invalid subscription")

	// ErrSubscriptionNotFound indicates the subscription is not registered.
	ErrSubscriptionNotFound = errors.New("message: subscription not found")
)
