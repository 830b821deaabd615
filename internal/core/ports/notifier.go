package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// StatusChangedEvent describes one observed order status transition. It
// carries everything the notification service needs to tell the order owner;
// enriching the event with user and email data happens on the consumer side,
// keeping the reconciliation core free of email-provider concerns.
type StatusChangedEvent struct {
	OrderID        kernel.UUID
	OldStatus      tracking.Status
	NewStatus      tracking.Status
	TrackingNumber *string
}

// Notifier is the side channel the reconciler raises status-change events on.
// Implementations deliver asynchronously (e.g. publish to a message queue);
// a delivery failure must never fail the reconciliation write that produced
// the event.
type Notifier interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}
