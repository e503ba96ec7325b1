package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/types"
)

type MerchantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, merchant *types.Merchant) (*types.Merchant, error)
	GetByID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) (*types.Merchant, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Merchant, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Merchant, error)
}

type merchantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMerchantRepo(db *gorm.DB, baseLog *logger.Logger) MerchantRepo {
	return &merchantRepo{db: db, log: baseLog.With("repo", "MerchantRepo")}
}

func (mr *merchantRepo) Create(ctx context.Context, tx *gorm.DB, merchant *types.Merchant) (*types.Merchant, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if merchant.ID == uuid.Nil {
		merchant.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(merchant).Error; err != nil {
		return nil, err
	}
	return merchant, nil
}

func (mr *merchantRepo) GetByID(ctx context.Context, tx *gorm.DB, merchantID uuid.UUID) (*types.Merchant, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	if merchantID == uuid.Nil {
		return nil, nil
	}
	var row types.Merchant
	err := transaction.WithContext(ctx).
		Where("id = ?", merchantID).
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

func (mr *merchantRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Merchant, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var row types.Merchant
	err := transaction.WithContext(ctx).
		Where("name = ?", name).
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

func (mr *merchantRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Merchant, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}
	var results []*types.Merchant
	// Registration order; id breaks created_at ties.
	if err := transaction.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
