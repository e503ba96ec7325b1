package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/shiplane/carrier-gateway/internal/pkg/errors"
	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/repos"
	"github.com/shiplane/carrier-gateway/internal/types"
)

type MerchantService interface {
	CreateMerchant(ctx context.Context, name string) (*types.Merchant, error)
	GetMerchant(ctx context.Context, merchantID uuid.UUID) (*types.Merchant, error)
	ListMerchants(ctx context.Context) ([]*types.Merchant, error)
}

type merchantService struct {
	db           *gorm.DB
	log          *logger.Logger
	merchantRepo repos.MerchantRepo
}

func NewMerchantService(db *gorm.DB, log *logger.Logger, merchantRepo repos.MerchantRepo) MerchantService {
	return &merchantService{
		db:           db,
		log:          log.With("service", "MerchantService"),
		merchantRepo: merchantRepo,
	}
}

func (ms *merchantService) CreateMerchant(ctx context.Context, name string) (*types.Merchant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.Validationf("merchant name must not be empty")
	}

	existing, err := ms.merchantRepo.GetByName(ctx, nil, name)
	if err != nil {
		return nil, fmt.Errorf("error checking merchant name: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Validationf("merchant with name %q already exists", name)
	}

	merchant := &types.Merchant{ID: uuid.New(), Name: name}
	created, err := ms.merchantRepo.Create(ctx, nil, merchant)
	if err != nil {
		if repos.IsDuplicateKey(err) {
			return nil, apperrors.Validationf("merchant with name %q already exists", name)
		}
		return nil, fmt.Errorf("error creating merchant: %w", err)
	}
	ms.log.Info("Merchant created", "merchant_id", created.ID, "name", created.Name)
	return created, nil
}

func (ms *merchantService) GetMerchant(ctx context.Context, merchantID uuid.UUID) (*types.Merchant, error) {
	merchant, err := ms.merchantRepo.GetByID(ctx, nil, merchantID)
	if err != nil {
		return nil, fmt.Errorf("error fetching merchant: %w", err)
	}
	if merchant == nil {
		return nil, apperrors.NotFoundf("merchant %s", merchantID)
	}
	return merchant, nil
}

func (ms *merchantService) ListMerchants(ctx context.Context) ([]*types.Merchant, error) {
	merchants, err := ms.merchantRepo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error listing merchants: %w", err)
	}
	return merchants, nil
}
