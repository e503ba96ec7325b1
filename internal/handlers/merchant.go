package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/shiplane/carrier-gateway/internal/pkg/errors"
	"github.com/shiplane/carrier-gateway/internal/services"
)

type MerchantHandler struct {
	merchantService services.MerchantService
}

func NewMerchantHandler(merchantService services.MerchantService) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantService}
}

type createMerchantRequest struct {
	Name string `json:"name" binding:"required"`
}

func (mh *MerchantHandler) CreateMerchant(c *gin.Context) {
	var req createMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "validation_error", apperrors.Validationf("invalid request body: %v", err))
		return
	}
	merchant, err := mh.merchantService.CreateMerchant(c.Request.Context(), req.Name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, merchant)
}

func (mh *MerchantHandler) GetMerchant(c *gin.Context) {
	merchantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", apperrors.NotFoundf("merchant %s", c.Param("id")))
		return
	}
	merchant, err := mh.merchantService.GetMerchant(c.Request.Context(), merchantID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, merchant)
}

func (mh *MerchantHandler) ListMerchants(c *gin.Context) {
	merchants, err := mh.merchantService.ListMerchants(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, merchants)
}
