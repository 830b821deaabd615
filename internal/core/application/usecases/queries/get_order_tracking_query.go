// Package queries contains read-only operations over the order store.
// Implements the Query side of the CQRS architecture: handlers read the
// database directly and return flat response models, bypassing the aggregate.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
		"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
	)
)

// GetOrderTrackingQuery retrieves the tracking view of one order: current
// status, carrier reference, reconciliation timestamps, and the audit trail
// of status transitions. Read-only; triggers no reconciliation.
//
// Example:
//
//	query, _ := NewGetOrderTrackingQuery(orderID, &userID)
//	handler := NewGetOrderTrackingQueryHandler(db)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get tracking view: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", view.OrderID, view.Status)
type GetOrderTrackingQuery struct {
	orderID          kernel.UUID
	requestingUserID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a tracking-view query for the given
// order. requestingUserID is optional: when set, the handler verifies
// ownership and reports a missing order instead of a forbidden one; nil
// means the caller is trusted (admin or internal).
func NewGetOrderTrackingQuery(orderID kernel.UUID, requestingUserID *kernel.UUID) (GetOrderTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTrackingQuery{}, err
	}
	if requestingUserID != nil {
		if err := requestingUserID.Validate(); err != nil {
			return GetOrderTrackingQuery{}, err
		}
	}

	return GetOrderTrackingQuery{
		orderID:          orderID,
		requestingUserID: requestingUserID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to read.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// RequestingUserID returns the user reading the view, or nil when no
// ownership check is required.
func (q GetOrderTrackingQuery) RequestingUserID() *kernel.UUID {
	return q.requestingUserID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderTrackingQueryIsNotConstructed if validation fails.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// GetOrderTrackingQueryResponse is the tracking view returned to HTTP
// callers. IsActive mirrors the terminal-status set: false once the order
// reached DELIVERED, UNDELIVERED, or EXPIRED.
type GetOrderTrackingQueryResponse struct {
	OrderID                 kernel.UUID
	TrackingReference       *string
	Status                  string
	TrackingLastCheckedAt   *time.Time
	TrackingStatusUpdatedAt *time.Time
	TrackingEvents          []TrackingEventResponse
	IsActive                bool
}

// TrackingEventResponse is one audit-trail entry of the tracking view.
type TrackingEventResponse struct {
	Status    string
	Timestamp time.Time
	Note      string
}
