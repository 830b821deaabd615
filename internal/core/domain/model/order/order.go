package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// Order is the aggregate root for fulfillment tracking. The order itself is
// created by the order-placement flow elsewhere in the platform; this engine
// only mutates the tracking-related fields and appends to the status history.
//
// Invariants:
//   - status history only grows, with non-decreasing entry timestamps
//   - trackingStatusUpdatedAt moves if and only if a history entry with a
//     different status than its predecessor was appended
//   - trackingNumber is set once and never cleared
//   - status is always re-derived from the latest carrier snapshot, never
//     advanced based on elapsed time
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the order owner; read-only in this engine,
	// used for the manual-refresh ownership check
	customerID kernel.UUID

	// carrierShipmentID is the carrier-side reference, assigned once a
	// shipping label is purchased (nil before that)
	carrierShipmentID *string

	// status is the current state in the parcel lifecycle
	status tracking.Status

	// trackingNumber is carrier-assigned, set once and never cleared
	trackingNumber *string

	// trackingLastCheckedAt is when reconciliation last observed this order,
	// updated on every attempt whether or not status changed
	trackingLastCheckedAt *time.Time

	// trackingStatusUpdatedAt is when the status last changed,
	// untouched when a pass confirms no change
	trackingStatusUpdatedAt *time.Time

	// history is the append-only audit trail of status transitions
	history []tracking.HistoryEntry

	// version is the optimistic-concurrency token owned by the store
	version int

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates an order in Pending status with an empty history. Used by
// the order-placement flow and by tests; the reconciliation engine itself
// never creates orders.
func NewOrder(id, customerID kernel.UUID, carrierShipmentID *string) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if carrierShipmentID != nil && *carrierShipmentID == "" {
		return nil, errs.NewValueIsRequiredError("carrierShipmentID")
	}

	return &Order{
		id:                id,
		customerID:        customerID,
		carrierShipmentID: carrierShipmentID,
		status:            tracking.Pending,
		history:           make([]tracking.HistoryEntry, 0),
		isConstructed:     true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence. All tracking fields
// are taken as-is; the status must be a valid lifecycle value.
func RestoreOrder(
	id, customerID kernel.UUID,
	carrierShipmentID *string,
	status tracking.Status,
	trackingNumber *string,
	trackingLastCheckedAt, trackingStatusUpdatedAt *time.Time,
	history []tracking.HistoryEntry,
	version int,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := customerID.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewValueIsInvalidError("version")
	}

	if history == nil {
		history = make([]tracking.HistoryEntry, 0)
	}

	return &Order{
		id:                      id,
		customerID:              customerID,
		carrierShipmentID:       carrierShipmentID,
		status:                  status,
		trackingNumber:          trackingNumber,
		trackingLastCheckedAt:   trackingLastCheckedAt,
		trackingStatusUpdatedAt: trackingStatusUpdatedAt,
		history:                 history,
		version:                 version,
		isConstructed:           true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the identifier of the order owner.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// CarrierShipmentID returns the carrier-side shipment reference, or nil if no
// label has been purchased yet. Orders without it are never reconciled.
func (o *Order) CarrierShipmentID() *string {
	return o.carrierShipmentID
}

// Status returns the current lifecycle status of the order.
func (o *Order) Status() tracking.Status {
	return o.status
}

// TrackingNumber returns the carrier-assigned tracking number, or nil.
func (o *Order) TrackingNumber() *string {
	return o.trackingNumber
}

// TrackingLastCheckedAt returns when reconciliation last observed this order.
func (o *Order) TrackingLastCheckedAt() *time.Time {
	return o.trackingLastCheckedAt
}

// TrackingStatusUpdatedAt returns when the status last changed.
func (o *Order) TrackingStatusUpdatedAt() *time.Time {
	return o.trackingStatusUpdatedAt
}

// History returns a copy of the append-only status history.
func (o *Order) History() []tracking.HistoryEntry {
	history := make([]tracking.HistoryEntry, len(o.history))
	copy(history, o.history)
	return history
}

// Version returns the optimistic-concurrency token for the order row.
func (o *Order) Version() int {
	return o.version
}

// IsActive reports whether the order is still expected to change, i.e. its
// status is not terminal.
func (o *Order) IsActive() bool {
	return !o.status.IsTerminal()
}

// IsOwnedBy reports whether the given user owns this order.
func (o *Order) IsOwnedBy(userID kernel.UUID) bool {
	return o.customerID.IsEqual(userID)
}

// ApplySnapshot re-derives the order status from a carrier snapshot and
// records the outcome.
//
// The status is always recomputed from scratch via tracking.MapStatus. If it
// differs from the current status, a history entry carrying the snapshot is
// appended and trackingStatusUpdatedAt moves; otherwise the history is left
// untouched. trackingLastCheckedAt is updated either way, which makes the
// write idempotent: applying the same snapshot twice appends at most one
// entry.
//
// A tracking number reported by the carrier is adopted if the order has none
// yet; it is never overwritten or cleared afterwards.
//
// Returns whether the status changed.
func (o *Order) ApplySnapshot(snapshot tracking.Snapshot, note string, now time.Time) (bool, error) {
	if err := snapshot.Validate(); err != nil {
		return false, err
	}

	if o.trackingNumber == nil && snapshot.TrackingNumber() != nil {
		number := *snapshot.TrackingNumber()
		o.trackingNumber = &number
	}

	record := snapshot.Record()
	return o.applyStatus(tracking.MapStatus(snapshot), note, now, &record), nil
}

// MarkNotFound records that the carrier does not recognize the order's
// shipment identifier. Used by manual refresh when the singleton batch
// response comes back empty; the scheduled pass deliberately leaves such
// orders untouched instead. Returns whether the status changed.
func (o *Order) MarkNotFound(note string, now time.Time) bool {
	return o.applyStatus(tracking.NotFound, note, now, nil)
}

// applyStatus applies a freshly derived status. Appends a history entry and
// moves trackingStatusUpdatedAt only on change; always moves
// trackingLastCheckedAt.
func (o *Order) applyStatus(
	newStatus tracking.Status,
	note string,
	now time.Time,
	snapshot *tracking.SnapshotRecord,
) bool {
	changed := newStatus != o.status

	if changed {
		// Entry timestamps must stay non-decreasing even if the caller's
		// clock briefly runs behind a concurrent writer's.
		entryTime := now
		if last := len(o.history) - 1; last >= 0 && entryTime.Before(o.history[last].Timestamp) {
			entryTime = o.history[last].Timestamp
		}

		o.history = append(o.history, tracking.HistoryEntry{
			Status:    newStatus,
			Timestamp: entryTime,
			Note:      note,
			Snapshot:  snapshot,
		})
		o.status = newStatus
		statusUpdatedAt := entryTime
		o.trackingStatusUpdatedAt = &statusUpdatedAt
	}

	checkedAt := now
	o.trackingLastCheckedAt = &checkedAt
	return changed
}

// MarkChecked records a reconciliation attempt that produced no carrier
// answer to apply, moving only trackingLastCheckedAt.
func (o *Order) MarkChecked(now time.Time) {
	checkedAt := now
	o.trackingLastCheckedAt = &checkedAt
}
