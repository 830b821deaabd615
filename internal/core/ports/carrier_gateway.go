package ports

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/tracking"
)

// ErrCarrierUnavailable indicates a transient failure talking to the carrier
// API (timeout, non-2xx response, malformed payload). Batch passes recover by
// retrying on the next scheduled tick; manual refresh surfaces it to the
// caller. Adapters wrap the underlying cause with this sentinel.
var ErrCarrierUnavailable = errors.New("carrier is unavailable")

// CarrierGateway is the read-only boundary to the external shipping carrier.
type CarrierGateway interface {
	// FetchShipments queries the carrier for the given shipment identifiers
	// in a single batch request and returns one snapshot per identifier the
	// carrier recognizes.
	//
	// The returned list may be a strict subset of the requested identifiers:
	// shipments not yet created or deleted on the carrier side are simply
	// omitted. Callers must treat missing identifiers as "unknown" rather
	// than as an error.
	FetchShipments(ctx context.Context, shipmentIDs []string) ([]tracking.Snapshot, error)
}
