package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ShipmentEventType string

const (
	ShipmentEventLabelCreated   ShipmentEventType = "label_created"
	ShipmentEventPickedUp       ShipmentEventType = "picked_up"
	ShipmentEventOutForDelivery ShipmentEventType = "out_for_delivery"
	ShipmentEventDelivered      ShipmentEventType = "delivered"
	ShipmentEventDeliveryFailed ShipmentEventType = "delivery_failed"
)

func (t ShipmentEventType) Valid() bool {
	switch t {
	case ShipmentEventLabelCreated, ShipmentEventPickedUp, ShipmentEventOutForDelivery, ShipmentEventDelivered, ShipmentEventDeliveryFailed:
		return true
	}
	return false
}

type ShipmentEventSource string

const (
	ShipmentEventSourceCarrier ShipmentEventSource = "carrier"
	ShipmentEventSourceSystem  ShipmentEventSource = "system"
	ShipmentEventSourceManual  ShipmentEventSource = "manual"
)

func (s ShipmentEventSource) Valid() bool {
	switch s {
	case ShipmentEventSourceCarrier, ShipmentEventSourceSystem, ShipmentEventSourceManual:
		return true
	}
	return false
}

// ShipmentEvent rows are append-only. The autoincrement id is the ledger
// order; occurred_at may be backdated and carries no ordering guarantee.
type ShipmentEvent struct {
	ID         uint64              `gorm:"primaryKey;autoIncrement" json:"id"`
	ShipmentID uuid.UUID           `gorm:"type:uuid;not null;index" json:"shipment_id"`
	Shipment   *Shipment           `gorm:"constraint:OnDelete:CASCADE;foreignKey:ShipmentID;references:ID" json:"shipment,omitempty"`
	Type       ShipmentEventType   `gorm:"not null;column:type" json:"type"`
	Source     ShipmentEventSource `gorm:"not null;column:source" json:"source"`
	Reason     *string             `gorm:"column:reason" json:"reason,omitempty"`
	Data       datatypes.JSON      `gorm:"column:data" json:"data,omitempty"`
	OccurredAt time.Time           `gorm:"not null;column:occurred_at" json:"occurred_at"`
	CreatedAt  time.Time           `gorm:"not null" json:"created_at"`
}

func (ShipmentEvent) TableName() string { return "shipment_event" }
