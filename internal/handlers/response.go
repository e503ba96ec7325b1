package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/shiplane/carrier-gateway/internal/pkg/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondDomainError maps the domain error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a storage fault and surfaces as a
// generic 500, never masked as a client error.
func RespondDomainError(c *gin.Context, err error) {
	var transitionErr *apperrors.InvalidTransitionError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		RespondError(c, http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, apperrors.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.As(err, &transitionErr):
		RespondError(c, http.StatusConflict, "invalid_transition", transitionErr)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
