package tracking

// MapStatus derives an order status from a carrier snapshot. It is pure and
// total: every combination of the three optional lifecycle timestamps maps to
// exactly one status, with the most advanced timestamp taking precedence.
//
//	shippedOn set    -> Transit
//	manifestedOn set -> Dispatched
//	printedOn set    -> Processing
//	none set         -> Pending
//
// Absence of the shipment from a carrier response is not a snapshot and is
// handled by the reconciliation pipeline, not here.
func MapStatus(snapshot Snapshot) Status {
	switch {
	case snapshot.ShippedOn() != nil:
		return Transit
	case snapshot.ManifestedOn() != nil:
		return Dispatched
	case snapshot.PrintedOn() != nil:
		return Processing
	default:
		return Pending
	}
}
