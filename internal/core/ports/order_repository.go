package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates as
// seen by the reconciliation engine. The engine never creates or deletes
// orders; it only reads them and conditionally updates their tracking fields.
type OrderRepository interface {
	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Update persists the tracking fields of an existing order aggregate.
	// Implementations enforce optimistic concurrency on the order row and
	// report a version conflict via errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// GetEligibleForReconciliation retrieves up to limit orders that have a
	// carrier shipment identifier and are not in a terminal status, ordered
	// by oldest trackingLastCheckedAt first (never-checked orders first) so
	// no order starves.
	GetEligibleForReconciliation(ctx context.Context, limit int) ([]*order.Order, error)
}
