package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"
)

// noteManualRefresh is the audit note recorded for history entries produced
// by an on-demand refresh.
const noteManualRefresh = "manual refresh"

// RefreshOrderTrackingCommandHandler reconciles one order synchronously.
// Loads the order, checks ownership, queries the carrier with a singleton
// identifier set, and applies the same status-mapping and persistence logic
// as one element of the batch pass.
//
// Differences from the batch pass: a carrier failure propagates to the
// caller (who is actively waiting), and an empty carrier response is
// recorded as NOTFOUND instead of being skipped, since the caller asked for
// a definitive answer about this one shipment.
type RefreshOrderTrackingCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.CarrierGateway
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewRefreshOrderTrackingCommandHandler creates a handler for on-demand
// single-order refreshes.
func NewRefreshOrderTrackingCommandHandler(
	uowFactory OrderUoWFactory,
	gateway ports.CarrierGateway,
	notifier ports.Notifier,
	logger *slog.Logger,
) RefreshOrderTrackingCommandHandler {
	return RefreshOrderTrackingCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		notifier:   notifier,
		logger:     logger.With("component", "refresh_order_tracking_handler"),
	}
}

// Handle processes the refresh command.
//
// Fails with an errs.ObjectNotFoundError when the order does not exist, when
// the requesting user does not own it (never Forbidden, to avoid leaking
// existence), or when no carrier shipment has been created for it yet.
// Carrier gateway failures are returned unwrapped so callers can match
// ports.ErrCarrierUnavailable. A version conflict on the write means a
// concurrent pass reconciled the order first; the refresh reports success and
// the caller reads the already-fresh state.
func (h RefreshOrderTrackingCommandHandler) Handle(ctx context.Context, command RefreshOrderTrackingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	o, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	if userID := command.RequestingUserID(); userID != nil && !o.IsOwnedBy(*userID) {
		return errs.NewObjectNotFoundError("order", command.OrderID().String())
	}

	shipmentID := o.CarrierShipmentID()
	if shipmentID == nil {
		return errs.NewObjectNotFoundError("shipment", command.OrderID().String())
	}

	snapshots, err := h.gateway.FetchShipments(ctx, []string{*shipmentID})
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	oldStatus := o.Status()
	var changed bool

	if len(snapshots) == 0 {
		// The carrier no longer recognizes the shipment; record that answer.
		changed = o.MarkNotFound(noteManualRefresh, now)
	} else {
		changed, err = o.ApplySnapshot(snapshots[0], noteManualRefresh, now)
		if err != nil {
			return err
		}
	}

	if err = ordersRepo.Update(ctx, o); err != nil {
		if errors.Is(err, errs.ErrVersionIsInvalid) {
			// A concurrent pass reconciled this order first; its write is at
			// least as fresh as ours, so the refresh already succeeded.
			h.logger.InfoContext(ctx, "Order was reconciled concurrently, nothing to apply",
				"order_id", o.ID().String())
			return nil
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	metrics.ManualRefreshesTotal.Inc()
	if changed {
		metrics.StatusChangesTotal.Inc()
		event := ports.StatusChangedEvent{
			OrderID:        o.ID(),
			OldStatus:      oldStatus,
			NewStatus:      o.Status(),
			TrackingNumber: o.TrackingNumber(),
		}
		if publishErr := h.notifier.PublishStatusChanged(ctx, event); publishErr != nil {
			h.logger.ErrorContext(ctx, "Failed to publish status-changed event",
				"order_id", event.OrderID.String(), "error", publishErr)
		}
	}

	return nil
}
