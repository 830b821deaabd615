// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling the conversion between the domain entity and its
// database representation, including the jsonb-encoded status history.
package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status history is stored as an append-only jsonb array on the same row
// so that one reconciliation outcome is always a single-row atomic update.
type OrderDTO struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID              uuid.UUID `gorm:"type:uuid;index"`
	CarrierShipmentID       *string   `gorm:"index"`
	Status                  int       `gorm:"index"`
	TrackingNumber          *string
	TrackingLastCheckedAt   *time.Time `gorm:"index"`
	TrackingStatusUpdatedAt *time.Time
	StatusHistory           string `gorm:"type:jsonb"`
	Version                 int
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database
// representation, serializing the status history to JSON.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	historyJSON, err := json.Marshal(aggregate.History())
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:                      aggregate.ID().Bytes(),
		CustomerID:              aggregate.CustomerID().Bytes(),
		CarrierShipmentID:       aggregate.CarrierShipmentID(),
		Status:                  int(aggregate.Status()),
		TrackingNumber:          aggregate.TrackingNumber(),
		TrackingLastCheckedAt:   aggregate.TrackingLastCheckedAt(),
		TrackingStatusUpdatedAt: aggregate.TrackingStatusUpdatedAt(),
		StatusHistory:           string(historyJSON),
		Version:                 aggregate.Version(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate using
// RestoreOrder, deserializing the status history.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	history := make([]tracking.HistoryEntry, 0)
	if dto.StatusHistory != "" {
		if err = json.Unmarshal([]byte(dto.StatusHistory), &history); err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		customerID,
		dto.CarrierShipmentID,
		tracking.Status(dto.Status),
		dto.TrackingNumber,
		dto.TrackingLastCheckedAt,
		dto.TrackingStatusUpdatedAt,
		history,
		dto.Version,
	)
}
