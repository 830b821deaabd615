package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"
)

// reconcileBatchSize caps one pass at the carrier API's batch query limit of
// 100 identifiers per call.
const reconcileBatchSize = 100

// noteScheduledReconciliation is the audit note recorded for history entries
// produced by the scheduled batch pass.
const noteScheduledReconciliation = "scheduled reconciliation"

// ReconcileShipmentsCommandHandler orchestrates one batch reconciliation
// pass. It selects the stalest eligible orders, calls the carrier gateway
// once with all their shipment identifiers, re-derives each order's status
// from the returned snapshots, persists the results, and raises
// status-changed events for the notifier.
//
// Failure policy: a carrier gateway failure aborts the whole pass before any
// write happens, so a half-applied batch can never corrupt the
// stale-first retry ordering. Orders the carrier omitted from the response
// are left completely untouched, including trackingLastCheckedAt, which keeps
// them at the front of the next pass. An order whose write loses a version
// race to a concurrent manual refresh is skipped, not treated as a pass
// failure: the concurrent writer already reconciled it.
type ReconcileShipmentsCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.CarrierGateway
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewReconcileShipmentsCommandHandler creates a handler for batch
// reconciliation passes. Requires a unit of work factory for transactional
// updates, the carrier gateway, and the notifier side channel.
func NewReconcileShipmentsCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.CarrierGateway,
	notifier ports.Notifier,
	logger *slog.Logger,
) ReconcileShipmentsCommandHandler {
	return ReconcileShipmentsCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		notifier:   notifier,
		logger:     logger.With("component", "reconcile_shipments_handler"),
	}
}

// Handle processes one batch reconciliation pass.
//
// An empty eligibility query result is a no-op, not an error. A carrier
// gateway failure is returned to the caller with no writes performed; the
// scheduled job logs it and the pass is simply retried on the next tick.
// Status-changed events are published only after the transaction commits,
// and a publish failure is logged, never propagated.
func (h ReconcileShipmentsCommandHandler) Handle(ctx context.Context, command ReconcileShipmentsCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()

	orders, err := uow.OrderRepository().GetEligibleForReconciliation(ctx, reconcileBatchSize)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		return nil
	}

	byShipmentID := make(map[string]*order.Order, len(orders))
	shipmentIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		shipmentID := o.CarrierShipmentID()
		if shipmentID == nil {
			// The eligibility query never selects these; defensive only.
			continue
		}
		byShipmentID[*shipmentID] = o
		shipmentIDs = append(shipmentIDs, *shipmentID)
	}

	snapshots, err := h.gateway.FetchShipments(ctx, shipmentIDs)
	if err != nil {
		metrics.ReconciliationFailuresTotal.Inc()
		return err
	}

	// The carrier round trip is over; only now does the write transaction
	// open, so a slow carrier never holds database locks.
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	now := time.Now().UTC()
	events := make([]ports.StatusChangedEvent, 0)

	for _, snapshot := range snapshots {
		o, ok := byShipmentID[snapshot.ShipmentID()]
		if !ok {
			// The carrier answered for a shipment we did not ask about.
			h.logger.WarnContext(ctx, "Carrier returned unrequested shipment",
				"shipment_id", snapshot.ShipmentID())
			continue
		}

		oldStatus := o.Status()
		changed, applyErr := o.ApplySnapshot(snapshot, noteScheduledReconciliation, now)
		if applyErr != nil {
			return applyErr
		}

		if updateErr := ordersRepo.Update(ctx, o); updateErr != nil {
			if errors.Is(updateErr, errs.ErrVersionIsInvalid) {
				// A concurrent manual refresh got there first; its write is
				// fresher than our pre-fetch read, so skip this order.
				h.logger.WarnContext(ctx, "Order was reconciled concurrently, skipping",
					"order_id", o.ID().String())
				continue
			}
			return updateErr
		}

		metrics.OrdersReconciledTotal.Inc()
		if changed {
			metrics.StatusChangesTotal.Inc()
			events = append(events, ports.StatusChangedEvent{
				OrderID:        o.ID(),
				OldStatus:      oldStatus,
				NewStatus:      o.Status(),
				TrackingNumber: o.TrackingNumber(),
			})
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.ReconciliationPassesTotal.Inc()

	for _, event := range events {
		if publishErr := h.notifier.PublishStatusChanged(ctx, event); publishErr != nil {
			h.logger.ErrorContext(ctx, "Failed to publish status-changed event",
				"order_id", event.OrderID.String(), "error", publishErr)
		}
	}

	return nil
}
