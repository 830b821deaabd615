package tracking

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the parcel lifecycle state of an order as derived from
// the carrier's view. It is a closed enumeration; transitions are never
// advanced locally but always re-derived from the latest carrier snapshot.
//
// Lifecycle:
//
//	PENDING ──> PROCESSING ──> DISPATCHED ──> TRANSIT ──┬──> DELIVERED
//	                                                    ├──> UNDELIVERED
//	                                                    ├──> EXCEPTION
//	                                                    └──> EXPIRED
//
// NOTFOUND is reachable from any state when the carrier no longer recognizes
// the shipment identifier.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending means a label has been purchased but the carrier has not yet
	// reported any lifecycle progress. Initial state at label-purchase time.
	Pending

	// Processing means the carrier has printed the shipping label.
	Processing

	// Dispatched means the parcel has been manifested with the carrier.
	Dispatched

	// Transit means the parcel has been shipped and is on its way.
	Transit

	// Delivered means the parcel reached its recipient. Terminal.
	Delivered

	// Undelivered means delivery failed permanently. Terminal.
	Undelivered

	// Exception means the carrier reported a problem that may still resolve.
	// Orders in this state remain eligible for reconciliation.
	Exception

	// Expired means the shipment aged out on the carrier side. Terminal.
	Expired

	// NotFound means the carrier batch response omitted the shipment
	// identifier for a manual refresh. Reachable from any state.
	NotFound
)

// getStatusStrings returns a map of Status values to their wire
// representations. All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "UNKNOWN",
		Pending:     "PENDING",
		Processing:  "PROCESSING",
		Dispatched:  "DISPATCHED",
		Transit:     "TRANSIT",
		Delivered:   "DELIVERED",
		Undelivered: "UNDELIVERED",
		Exception:   "EXCEPTION",
		Expired:     "EXPIRED",
		NotFound:    "NOTFOUND",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Unknown is excluded to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:     "PENDING",
		Processing:  "PROCESSING",
		Dispatched:  "DISPATCHED",
		Transit:     "TRANSIT",
		Delivered:   "DELIVERED",
		Undelivered: "UNDELIVERED",
		Exception:   "EXCEPTION",
		Expired:     "EXPIRED",
		NotFound:    "NOTFOUND",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and any out-of-range value are invalid. Used to vet status
// values coming from external sources such as the database.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("PENDING", "TRANSIT", ...).
// Implements fmt.Stringer and is safe to call on any value, including
// invalid ones, for which it returns "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further reconciliation is expected to change
// the outcome. Terminal orders are excluded from scheduled batch passes but
// remain refreshable on demand.
//
// Terminal statuses: Delivered, Undelivered, Expired. Exception is NOT
// terminal: the carrier may still resolve it.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Undelivered || s == Expired
}
