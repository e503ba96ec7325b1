package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/shiplane/carrier-gateway/internal/pkg/errors"
	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/repos"
	"github.com/shiplane/carrier-gateway/internal/types"
)

// ShipmentCreateResult carries the idempotency signal: Created is false
// when the request was resolved to a previously created shipment.
type ShipmentCreateResult struct {
	Shipment *types.Shipment
	Created  bool
}

type ShipmentService interface {
	CreateShipment(ctx context.Context, merchantID uuid.UUID, name, externalReference string) (*ShipmentCreateResult, error)
	GetShipment(ctx context.Context, shipmentID uuid.UUID) (*types.Shipment, error)
	ListShipments(ctx context.Context, filter repos.ShipmentFilter) ([]*types.Shipment, error)
	TransitionStatus(ctx context.Context, shipmentID uuid.UUID, newStatus types.ShipmentStatus) (*types.Shipment, error)
}

type shipmentService struct {
	db           *gorm.DB
	log          *logger.Logger
	merchantRepo repos.MerchantRepo
	shipmentRepo repos.ShipmentRepo
	eventRepo    repos.ShipmentEventRepo
}

func NewShipmentService(db *gorm.DB, log *logger.Logger, merchantRepo repos.MerchantRepo, shipmentRepo repos.ShipmentRepo, eventRepo repos.ShipmentEventRepo) ShipmentService {
	return &shipmentService{
		db:           db,
		log:          log.With("service", "ShipmentService"),
		merchantRepo: merchantRepo,
		shipmentRepo: shipmentRepo,
		eventRepo:    eventRepo,
	}
}

// CreateShipment is idempotent on (merchantID, externalReference). The
// unique index is the arbiter: a duplicate-key error means another writer
// won the insert, and the loser resolves to the winner's row as if it had
// arrived second.
func (ss *shipmentService) CreateShipment(ctx context.Context, merchantID uuid.UUID, name, externalReference string) (*ShipmentCreateResult, error) {
	merchant, err := ss.merchantRepo.GetByID(ctx, nil, merchantID)
	if err != nil {
		return nil, fmt.Errorf("error fetching merchant: %w", err)
	}
	if merchant == nil {
		return nil, apperrors.NotFoundf("merchant %s", merchantID)
	}

	name = strings.TrimSpace(name)
	externalReference = strings.TrimSpace(externalReference)
	if name == "" {
		return nil, apperrors.Validationf("shipment name must not be empty")
	}
	if externalReference == "" {
		return nil, apperrors.Validationf("external_reference must not be empty")
	}

	existing, err := ss.shipmentRepo.GetByMerchantAndReference(ctx, nil, merchantID, externalReference)
	if err != nil {
		return nil, fmt.Errorf("error looking up shipment by reference: %w", err)
	}
	if existing != nil {
		return &ShipmentCreateResult{Shipment: existing, Created: false}, nil
	}

	shipment := &types.Shipment{
		ID:                uuid.New(),
		MerchantID:        merchantID,
		Name:              name,
		ExternalReference: externalReference,
		Status:            types.ShipmentStatusCreated,
	}
	err = ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ss.shipmentRepo.Create(ctx, tx, shipment); err != nil {
			return err
		}
		event := &types.ShipmentEvent{
			ShipmentID: shipment.ID,
			Type:       types.ShipmentEventLabelCreated,
			Source:     types.ShipmentEventSourceSystem,
			OccurredAt: time.Now().UTC(),
		}
		if _, err := ss.eventRepo.Append(ctx, tx, event); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if repos.IsDuplicateKey(err) {
			winner, readErr := ss.shipmentRepo.GetByMerchantAndReference(ctx, nil, merchantID, externalReference)
			if readErr != nil {
				return nil, fmt.Errorf("error resolving create race: %w", readErr)
			}
			if winner == nil {
				return nil, fmt.Errorf("%w: shipment create race left no winner for merchant %s reference %q", apperrors.ErrConflict, merchantID, externalReference)
			}
			ss.log.Debug("Shipment create lost insert race, returning winner", "shipment_id", winner.ID)
			return &ShipmentCreateResult{Shipment: winner, Created: false}, nil
		}
		return nil, fmt.Errorf("error creating shipment: %w", err)
	}

	ss.log.Info("Shipment created", "shipment_id", shipment.ID, "merchant_id", merchantID, "external_reference", externalReference)
	return &ShipmentCreateResult{Shipment: shipment, Created: true}, nil
}

func (ss *shipmentService) GetShipment(ctx context.Context, shipmentID uuid.UUID) (*types.Shipment, error) {
	shipment, err := ss.shipmentRepo.GetByID(ctx, nil, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching shipment: %w", err)
	}
	if shipment == nil {
		return nil, apperrors.NotFoundf("shipment %s", shipmentID)
	}
	return shipment, nil
}

func (ss *shipmentService) ListShipments(ctx context.Context, filter repos.ShipmentFilter) ([]*types.Shipment, error) {
	if filter.Status != nil && *filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.Validationf("unknown shipment status %q", *filter.Status)
	}
	shipments, err := ss.shipmentRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing shipments: %w", err)
	}
	return shipments, nil
}

// TransitionStatus linearizes concurrent transitions per shipment through
// a compare-and-swap on the status column. A lost swap is retried once
// against the re-read state; if the requested edge no longer exists from
// that state the caller gets InvalidTransitionError, never a silent
// overwrite.
func (ss *shipmentService) TransitionStatus(ctx context.Context, shipmentID uuid.UUID, newStatus types.ShipmentStatus) (*types.Shipment, error) {
	if !newStatus.Valid() {
		return nil, apperrors.Validationf("unknown shipment status %q", newStatus)
	}

	shipment, err := ss.shipmentRepo.GetByID(ctx, nil, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching shipment: %w", err)
	}
	if shipment == nil {
		return nil, apperrors.NotFoundf("shipment %s", shipmentID)
	}

	current := shipment.Status
	for attempt := 0; attempt < 2; attempt++ {
		if !types.CanTransition(current, newStatus) {
			return nil, apperrors.NewInvalidTransition(string(current), string(newStatus))
		}
		swapped, err := ss.shipmentRepo.UpdateStatusFrom(ctx, nil, shipmentID, current, newStatus)
		if err != nil {
			return nil, fmt.Errorf("error updating shipment status: %w", err)
		}
		if swapped {
			ss.log.Info("Shipment status transitioned", "shipment_id", shipmentID, "from", current, "to", newStatus)
			committed, err := ss.shipmentRepo.GetByID(ctx, nil, shipmentID)
			if err != nil || committed == nil {
				shipment.Status = newStatus
				return shipment, nil
			}
			return committed, nil
		}
		// Another writer moved the row between read and swap; re-read
		// and re-validate against the committed state.
		latest, err := ss.shipmentRepo.GetByID(ctx, nil, shipmentID)
		if err != nil {
			return nil, fmt.Errorf("error re-reading shipment after lost swap: %w", err)
		}
		if latest == nil {
			return nil, apperrors.NotFoundf("shipment %s", shipmentID)
		}
		shipment = latest
		current = latest.Status
	}
	return nil, fmt.Errorf("%w: shipment %s status contention unresolved", apperrors.ErrConflict, shipmentID)
}
