package types

import (
	"time"

	"github.com/google/uuid"
)

type ShipmentStatus string

const (
	ShipmentStatusCreated   ShipmentStatus = "created"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusFailed    ShipmentStatus = "failed"
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
)

// AllowedTransitions is the single source of truth for the shipment status
// state machine. A status with an empty transition set is terminal.
var AllowedTransitions = map[ShipmentStatus][]ShipmentStatus{
	ShipmentStatusCreated:   {ShipmentStatusInTransit, ShipmentStatusCancelled},
	ShipmentStatusInTransit: {ShipmentStatusDelivered, ShipmentStatusFailed, ShipmentStatusCancelled},
	ShipmentStatusDelivered: {},
	ShipmentStatusFailed:    {},
	ShipmentStatusCancelled: {},
}

func (s ShipmentStatus) Valid() bool {
	_, ok := AllowedTransitions[s]
	return ok
}

func (s ShipmentStatus) Terminal() bool {
	return len(AllowedTransitions[s]) == 0
}

// CanTransition reports whether the edge from -> to exists in the
// transition table. Identity transitions are not in the table and are
// therefore rejected.
func CanTransition(from, to ShipmentStatus) bool {
	for _, next := range AllowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Shipment struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	MerchantID        uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uq_shipment_merchant_external_reference" json:"merchant_id"`
	Merchant          *Merchant      `gorm:"constraint:OnDelete:CASCADE;foreignKey:MerchantID;references:ID" json:"merchant,omitempty"`
	Name              string         `gorm:"not null;column:name" json:"name"`
	ExternalReference string         `gorm:"not null;column:external_reference;uniqueIndex:uq_shipment_merchant_external_reference" json:"external_reference"`
	Status            ShipmentStatus `gorm:"not null;column:status;index" json:"status"`
	CreatedAt         time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updated_at"`
}

func (Shipment) TableName() string { return "shipment" }
