package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/types"
)

type ShipmentEventRepo interface {
	Append(ctx context.Context, tx *gorm.DB, event *types.ShipmentEvent) (*types.ShipmentEvent, error)
	ListByShipment(ctx context.Context, tx *gorm.DB, shipmentID uuid.UUID) ([]*types.ShipmentEvent, error)
	CountByShipment(ctx context.Context, tx *gorm.DB, shipmentID uuid.UUID) (int64, error)
}

type shipmentEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShipmentEventRepo(db *gorm.DB, baseLog *logger.Logger) ShipmentEventRepo {
	return &shipmentEventRepo{db: db, log: baseLog.With("repo", "ShipmentEventRepo")}
}

func (er *shipmentEventRepo) Append(ctx context.Context, tx *gorm.DB, event *types.ShipmentEvent) (*types.ShipmentEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// ListByShipment returns the ledger in append order. The id is the order;
// occurred_at may be backdated and is never used for sorting.
func (er *shipmentEventRepo) ListByShipment(ctx context.Context, tx *gorm.DB, shipmentID uuid.UUID) ([]*types.ShipmentEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.ShipmentEvent
	if err := transaction.WithContext(ctx).
		Where("shipment_id = ?", shipmentID).
		Order("id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (er *shipmentEventRepo) CountByShipment(ctx context.Context, tx *gorm.DB, shipmentID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ShipmentEvent{}).
		Where("shipment_id = ?", shipmentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
