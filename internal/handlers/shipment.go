package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/shiplane/carrier-gateway/internal/pkg/errors"
	"github.com/shiplane/carrier-gateway/internal/repos"
	"github.com/shiplane/carrier-gateway/internal/services"
	"github.com/shiplane/carrier-gateway/internal/types"
)

type ShipmentHandler struct {
	shipmentService services.ShipmentService
}

func NewShipmentHandler(shipmentService services.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

type createShipmentRequest struct {
	MerchantID        uuid.UUID `json:"merchant_id" binding:"required"`
	Name              string    `json:"name"`
	ExternalReference string    `json:"external_reference"`
}

func (sh *ShipmentHandler) CreateShipment(c *gin.Context) {
	var req createShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", apperrors.Validationf("invalid request body: %v", err))
		return
	}
	result, err := sh.shipmentService.CreateShipment(c.Request.Context(), req.MerchantID, req.Name, req.ExternalReference)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	// Idempotent replay answers 200, a fresh row answers 201.
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result.Shipment)
}

func (sh *ShipmentHandler) ListShipments(c *gin.Context) {
	var filter repos.ShipmentFilter
	if raw := c.Query("merchant_id"); raw != "" {
		merchantID, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "validation_error", apperrors.Validationf("invalid merchant_id %q", raw))
			return
		}
		filter.MerchantID = &merchantID
	}
	if raw := c.Query("status"); raw != "" {
		status := types.ShipmentStatus(raw)
		filter.Status = &status
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil {
			filter.Offset = offset
		}
	}
	shipments, err := sh.shipmentService.ListShipments(c.Request.Context(), filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, shipments)
}

func (sh *ShipmentHandler) GetShipment(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", apperrors.NotFoundf("shipment %s", c.Param("id")))
		return
	}
	shipment, err := sh.shipmentService.GetShipment(c.Request.Context(), shipmentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, shipment)
}

type transitionStatusRequest struct {
	Status types.ShipmentStatus `json:"status" binding:"required"`
}

func (sh *ShipmentHandler) TransitionStatus(c *gin.Context) {
	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", apperrors.NotFoundf("shipment %s", c.Param("id")))
		return
	}
	var req transitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", apperrors.Validationf("invalid request body: %v", err))
		return
	}
	shipment, err := sh.shipmentService.TransitionStatus(c.Request.Context(), shipmentID, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, shipment)
}
