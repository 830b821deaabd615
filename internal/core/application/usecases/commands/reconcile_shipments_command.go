package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrReconcileShipmentsCommandIsNotConstructed = errors.New(
	"ReconcileShipmentsCommand must be created via NewReconcileShipmentsCommand constructor",
)

// ReconcileShipmentsCommand triggers one scheduled batch reconciliation pass:
// the engine selects the stalest eligible orders, queries the carrier for
// their shipment state in a single batch, and persists any derived status
// changes.
//
// Example:
//
//	cmd := NewReconcileShipmentsCommand()
//	handler := NewReconcileShipmentsCommandHandler(uowFactory, gateway, notifier, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("Reconciliation pass failed: %v", err)
//	}
type ReconcileShipmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewReconcileShipmentsCommand creates a new command to trigger a batch
// reconciliation pass. The command is parameterless; the eligibility query
// and batch size are policy of the handler.
func NewReconcileShipmentsCommand() ReconcileShipmentsCommand {
	return ReconcileShipmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
// Returns ErrReconcileShipmentsCommandIsNotConstructed if validation fails.
func (c *ReconcileShipmentsCommand) Validate() error {
	return c.guard.Validate(
		ErrReconcileShipmentsCommandIsNotConstructed,
	)
}
