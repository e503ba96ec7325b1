package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/shiplane/carrier-gateway/internal/pkg/errors"
	"github.com/shiplane/carrier-gateway/internal/services"
	"github.com/shiplane/carrier-gateway/internal/types"
)

type ShipmentEventHandler struct {
	eventService services.ShipmentEventService
}

func NewShipmentEventHandler(eventService services.ShipmentEventService) *ShipmentEventHandler {
	return &ShipmentEventHandler{eventService: eventService}
}

type appendEventRequest struct {
	Type       types.ShipmentEventType   `json:"type" binding:"required"`
	Source     types.ShipmentEventSource `json:"source" binding:"required"`
	OccurredAt *time.Time                `json:"occurred_at"`
	Reason     *string                   `json:"reason"`
	Data       json.RawMessage           `json:"data"`
}

func (eh *ShipmentEventHandler) AppendEvent(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", apperrors.NotFoundf("shipment %s", c.Param("id")))
		return
	}
	var req appendEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", apperrors.Validationf("invalid request body: %v", err))
		return
	}
	event, err := eh.eventService.AppendEvent(c.Request.Context(), shipmentID, services.AppendEventInput{
		Type:       req.Type,
		Source:     req.Source,
		OccurredAt: req.OccurredAt,
		Reason:     req.Reason,
		Data:       req.Data,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (eh *ShipmentEventHandler) ListEvents(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", apperrors.NotFoundf("shipment %s", c.Param("id")))
		return
	}
	events, err := eh.eventService.ListEvents(c.Request.Context(), shipmentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, events)
}
