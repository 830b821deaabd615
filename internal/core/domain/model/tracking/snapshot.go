package tracking

import (
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrSnapshotIsNotConstructed is returned when a Snapshot was not created via
// the NewSnapshot constructor.
var ErrSnapshotIsNotConstructed = errs.NewValueIsRequiredError(
	"Snapshot must be created via NewSnapshot constructor",
)

// Snapshot is the carrier's view of one shipment at a point in time: the
// originating shipment identifier, the three optional lifecycle timestamps,
// and an optional carrier-assigned tracking number.
//
// Snapshot is an immutable value object. The carrier gateway constructs
// snapshots from batch query responses; the reconciliation pipeline derives
// order status from them via MapStatus.
type Snapshot struct {
	shipmentID     string
	printedOn      *time.Time
	manifestedOn   *time.Time
	shippedOn      *time.Time
	trackingNumber *string

	guard guard.ConstructorGuard
}

// NewSnapshot creates a carrier snapshot for the given shipment identifier.
// The identifier is required; all lifecycle timestamps and the tracking
// number are optional, since a freshly created shipment has none of them.
func NewSnapshot(
	shipmentID string,
	printedOn, manifestedOn, shippedOn *time.Time,
	trackingNumber *string,
) (Snapshot, error) {
	if shipmentID == "" {
		return Snapshot{}, errs.NewValueIsRequiredError("shipmentID")
	}

	return Snapshot{
		shipmentID:     shipmentID,
		printedOn:      printedOn,
		manifestedOn:   manifestedOn,
		shippedOn:      shippedOn,
		trackingNumber: trackingNumber,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the snapshot was created via NewSnapshot.
func (s Snapshot) Validate() error {
	return s.guard.Validate(ErrSnapshotIsNotConstructed)
}

// ShipmentID returns the carrier-side shipment identifier.
func (s Snapshot) ShipmentID() string {
	return s.shipmentID
}

// PrintedOn returns when the shipping label was printed, or nil.
func (s Snapshot) PrintedOn() *time.Time {
	return s.printedOn
}

// ManifestedOn returns when the parcel was manifested, or nil.
func (s Snapshot) ManifestedOn() *time.Time {
	return s.manifestedOn
}

// ShippedOn returns when the parcel was shipped, or nil.
func (s Snapshot) ShippedOn() *time.Time {
	return s.shippedOn
}

// TrackingNumber returns the carrier-assigned tracking number, or nil if the
// carrier has not assigned one yet.
func (s Snapshot) TrackingNumber() *string {
	return s.trackingNumber
}

// Record returns the serializable audit copy of the snapshot, suitable for
// embedding in an order's status history.
func (s Snapshot) Record() SnapshotRecord {
	return SnapshotRecord{
		ShipmentID:     s.shipmentID,
		PrintedOn:      s.printedOn,
		ManifestedOn:   s.manifestedOn,
		ShippedOn:      s.shippedOn,
		TrackingNumber: s.trackingNumber,
	}
}

// SnapshotRecord is the persisted audit form of a carrier snapshot. It is
// stored verbatim inside status history entries so the audit trail records
// which carrier fields triggered each transition.
type SnapshotRecord struct {
	ShipmentID     string     `json:"shipmentId"`
	PrintedOn      *time.Time `json:"printedOn,omitempty"`
	ManifestedOn   *time.Time `json:"manifestedOn,omitempty"`
	ShippedOn      *time.Time `json:"shippedOn,omitempty"`
	TrackingNumber *string    `json:"trackingNumber,omitempty"`
}
