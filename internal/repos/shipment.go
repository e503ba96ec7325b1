package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/types"
)

type ShipmentFilter struct {
	MerchantID *uuid.UUID
	Status     *types.ShipmentStatus
	Limit      int
	Offset     int
}

type ShipmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, shipment *types.Shipment) (*types.Shipment, error)
	GetByID(ctx context.Context, tx *gorm.DB, shipmentID uuid.UUID) (*types.Shipment, error)
	GetByMerchantAndReference(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID, externalReference string) (*types.Shipment, error)
	List(ctx context.Context, tx *gorm.DB, filter ShipmentFilter) ([]*types.Shipment, error)
	UpdateStatusFrom(ctx context.Context, tx *gorm.DB, shipmentID uuid.UUID, from, to types.ShipmentStatus) (bool, error)
}

type shipmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShipmentRepo(db *gorm.DB, baseLog *logger.Logger) ShipmentRepo {
	return &shipmentRepo{db: db, log: baseLog.With("repo", "ShipmentRepo")}
}

// IsDuplicateKey reports whether err is a storage-level uniqueness
// violation. GORM translates these on drivers configured with
// TranslateError; the pgconn check covers raw postgres errors.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (sr *shipmentRepo) Create(ctx context.Context, tx *gorm.DB, shipment *types.Shipment) (*types.Shipment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if shipment.ID == uuid.Nil {
		shipment.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(shipment).Error; err != nil {
		return nil, err
	}
	return shipment, nil
}

func (sr *shipmentRepo) GetByID(ctx context.Context, tx *gorm.DB, shipmentID uuid.UUID) (*types.Shipment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if shipmentID == uuid.Nil {
		return nil, nil
	}
	var row types.Shipment
	err := transaction.WithContext(ctx).
		Where("id = ?", shipmentID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (sr *shipmentRepo) GetByMerchantAndReference(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID, externalReference string) (*types.Shipment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var row types.Shipment
	err := transaction.WithContext(ctx).
		Where("merchant_id = ? AND external_reference = ?", merchantID, externalReference).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (sr *shipmentRepo) List(ctx context.Context, tx *gorm.DB, filter ShipmentFilter) ([]*types.Shipment, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	query := transaction.WithContext(ctx).Model(&types.Shipment{})
	if filter.MerchantID != nil && *filter.MerchantID != uuid.Nil {
		query = query.Where("merchant_id = ?", *filter.MerchantID)
	}
	if filter.Status != nil && *filter.Status != "" {
		query = query.Where("status = ?", *filter.Status)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	var results []*types.Shipment
	if err := query.
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateStatusFrom is a compare-and-swap on the status column. It returns
// false when no row matched (shipmentID, from), which the caller must
// resolve by re-reading the current row.
func (sr *shipmentRepo) UpdateStatusFrom(ctx context.Context, tx *gorm.DB, shipmentID uuid.UUID, from, to types.ShipmentStatus) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	result := transaction.WithContext(ctx).
		Model(&types.Shipment{}).
		Where("id = ? AND status = ?", shipmentID, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
