package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Charan-r11/Hack-The-Future/internal/common"
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

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// RespondAppError maps the sentinel taxonomy onto HTTP statuses. Monetization
// refusals use 402 with a distinct code so clients can tell "top up" from
// "upgrade".
func RespondAppError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		RespondError(c, http.StatusBadRequest, "validation_failed", err)
	case errors.Is(err, common.ErrExtraction):
		RespondError(c, http.StatusUnprocessableEntity, "extraction_failed", err)
	case errors.Is(err, common.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, common.ErrInsufficientBalance):
		RespondError(c, http.StatusPaymentRequired, "insufficient_balance", err)
	case errors.Is(err, common.ErrFeatureNotInTier):
		RespondError(c, http.StatusPaymentRequired, "feature_not_in_tier", err)
	case errors.Is(err, common.ErrProcessing):
		RespondError(c, http.StatusInternalServerError, "processing_failed", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
	}
}
