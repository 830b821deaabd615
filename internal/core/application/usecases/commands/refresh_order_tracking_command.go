package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRefreshOrderTrackingCommandIsNotConstructed = errors.New(
	"RefreshOrderTrackingCommand must be created via NewRefreshOrderTrackingCommand constructor",
)

// RefreshOrderTrackingCommand triggers an on-demand reconciliation of a
// single order against the carrier's current view. Unlike the scheduled
// batch pass it runs synchronously on the caller's request and surfaces
// carrier failures instead of deferring them.
//
// When a requesting user is supplied, the handler verifies ownership and
// reports a missing order rather than a forbidden one, so the existence of
// other customers' orders is not leaked.
type RefreshOrderTrackingCommand struct {
	orderID          kernel.UUID
	requestingUserID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefreshOrderTrackingCommand creates a refresh command for the given
// order. requestingUserID is optional: nil means the caller is trusted
// (admin or internal) and no ownership check is performed.
func NewRefreshOrderTrackingCommand(orderID kernel.UUID, requestingUserID *kernel.UUID) (RefreshOrderTrackingCommand, error) {
	if err := orderID.Validate(); err != nil {
		return RefreshOrderTrackingCommand{}, err
	}
	if requestingUserID != nil {
		if err := requestingUserID.Validate(); err != nil {
			return RefreshOrderTrackingCommand{}, err
		}
	}

	return RefreshOrderTrackingCommand{
		orderID:          orderID,
		requestingUserID: requestingUserID,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the identifier of the order to refresh.
func (c *RefreshOrderTrackingCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RequestingUserID returns the user requesting the refresh, or nil when no
// ownership check is required.
func (c *RefreshOrderTrackingCommand) RequestingUserID() *kernel.UUID {
	return c.requestingUserID
}

// Validate ensures the command was created through the constructor.
// Returns ErrRefreshOrderTrackingCommandIsNotConstructed if validation fails.
func (c *RefreshOrderTrackingCommand) Validate() error {
	return c.guard.Validate(
		ErrRefreshOrderTrackingCommandIsNotConstructed,
	)
}
