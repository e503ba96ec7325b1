package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	apperrors "github.com/shiplane/carrier-gateway/internal/pkg/errors"
	"github.com/shiplane/carrier-gateway/internal/pkg/logger"
	"github.com/shiplane/carrier-gateway/internal/repos"
	"github.com/shiplane/carrier-gateway/internal/types"
)

// AppendEventInput is the ledger append request. OccurredAt defaults to
// the append time; Reason and Data are optional carrier context.
type AppendEventInput struct {
	Type       types.ShipmentEventType
	Source     types.ShipmentEventSource
	OccurredAt *time.Time
	Reason     *string
	Data       []byte
}

type ShipmentEventService interface {
	AppendEvent(ctx context.Context, shipmentID uuid.UUID, input AppendEventInput) (*types.ShipmentEvent, error)
	ListEvents(ctx context.Context, shipmentID uuid.UUID) ([]*types.ShipmentEvent, error)
}

type shipmentEventService struct {
	db           *gorm.DB
	log          *logger.Logger
	shipmentRepo repos.ShipmentRepo
	eventRepo    repos.ShipmentEventRepo
}

func NewShipmentEventService(db *gorm.DB, log *logger.Logger, shipmentRepo repos.ShipmentRepo, eventRepo repos.ShipmentEventRepo) ShipmentEventService {
	return &shipmentEventService{
		db:           db,
		log:          log.With("service", "ShipmentEventService"),
		shipmentRepo: shipmentRepo,
		eventRepo:    eventRepo,
	}
}

// AppendEvent never gates on shipment status: a late delivery_failed note
// on a terminal shipment is a legal append.
func (es *shipmentEventService) AppendEvent(ctx context.Context, shipmentID uuid.UUID, input AppendEventInput) (*types.ShipmentEvent, error) {
	shipment, err := es.shipmentRepo.GetByID(ctx, nil, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching shipment: %w", err)
	}
	if shipment == nil {
		return nil, apperrors.NotFoundf("shipment %s", shipmentID)
	}

	if !input.Type.Valid() {
		return nil, apperrors.Validationf("unknown event type %q", input.Type)
	}
	if !input.Source.Valid() {
		return nil, apperrors.Validationf("unknown event source %q", input.Source)
	}

	occurredAt := time.Now().UTC()
	if input.OccurredAt != nil {
		occurredAt = input.OccurredAt.UTC()
	}

	event := &types.ShipmentEvent{
		ShipmentID: shipmentID,
		Type:       input.Type,
		Source:     input.Source,
		Reason:     input.Reason,
		OccurredAt: occurredAt,
	}
	if len(input.Data) > 0 {
		event.Data = datatypes.JSON(input.Data)
	}
	appended, err := es.eventRepo.Append(ctx, nil, event)
	if err != nil {
		return nil, fmt.Errorf("error appending shipment event: %w", err)
	}
	es.log.Debug("Shipment event appended", "shipment_id", shipmentID, "event_id", appended.ID, "type", appended.Type)
	return appended, nil
}

func (es *shipmentEventService) ListEvents(ctx context.Context, shipmentID uuid.UUID) ([]*types.ShipmentEvent, error) {
	shipment, err := es.shipmentRepo.GetByID(ctx, nil, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("error fetching shipment: %w", err)
	}
	if shipment == nil {
		return nil, apperrors.NotFoundf("shipment %s", shipmentID)
	}
	events, err := es.eventRepo.ListByShipment(ctx, nil, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing shipment events: %w", err)
	}
	return events, nil
}
