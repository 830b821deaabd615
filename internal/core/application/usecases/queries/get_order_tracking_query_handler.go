package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderTrackingQueryHandler reads the tracking view of one order straight
// from the database, including the jsonb status history.
//
// Example:
//
//	handler := NewGetOrderTrackingQueryHandler(db)
//	query, _ := NewGetOrderTrackingQuery(orderID, nil)
//
//	view, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to read tracking view: %v", err)
//	    return err
//	}
type GetOrderTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderTrackingQueryHandler creates a handler for tracking-view reads.
// Requires a GORM database connection for query execution.
func NewGetOrderTrackingQueryHandler(db *gorm.DB) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{db: db}
}

// Handle executes the query and builds the tracking view. Returns an
// errs.ObjectNotFoundError when the order does not exist or when the
// requesting user does not own it.
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_id,
			status,
			tracking_number,
			tracking_last_checked_at,
			tracking_status_updated_at,
			status_history
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		id              uuid.UUID
		customerID      uuid.UUID
		status          int
		trackingNumber  sql.NullString
		lastCheckedAt   sql.NullTime
		statusUpdatedAt sql.NullTime
		historyRaw      []byte
	)

	err := row.Scan(&id, &customerID, &status, &trackingNumber, &lastCheckedAt, &statusUpdatedAt, &historyRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	ownerID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	if userID := query.RequestingUserID(); userID != nil && !ownerID.IsEqual(*userID) {
		return GetOrderTrackingQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	events, err := decodeTrackingEvents(historyRaw)
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	orderStatus := tracking.Status(status)
	response := GetOrderTrackingQueryResponse{
		OrderID:        orderID,
		Status:         orderStatus.String(),
		TrackingEvents: events,
		IsActive:       !orderStatus.IsTerminal(),
	}
	if trackingNumber.Valid {
		number := trackingNumber.String
		response.TrackingReference = &number
	}
	if lastCheckedAt.Valid {
		checkedAt := lastCheckedAt.Time
		response.TrackingLastCheckedAt = &checkedAt
	}
	if statusUpdatedAt.Valid {
		updatedAt := statusUpdatedAt.Time
		response.TrackingStatusUpdatedAt = &updatedAt
	}

	return response, nil
}

// decodeTrackingEvents unmarshals the jsonb status history column into view
// events. A NULL column means no transitions have been recorded yet.
func decodeTrackingEvents(historyRaw []byte) ([]TrackingEventResponse, error) {
	events := make([]TrackingEventResponse, 0)
	if len(historyRaw) == 0 {
		return events, nil
	}

	var entries []tracking.HistoryEntry
	if err := json.Unmarshal(historyRaw, &entries); err != nil {
		return nil, err
	}

	for _, entry := range entries {
		events = append(events, TrackingEventResponse{
			Status:    entry.Status.String(),
			Timestamp: entry.Timestamp,
			Note:      entry.Note,
		})
	}

	return events, nil
}
