package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/skystack/backoffice/pkg/errors"
)

// SendError resolves err to its HTTP status and writes the error body the API
// exposes. Internal causes are never serialized.
func SendError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		body := gin.H{"error": appErr.Message}
		if retry, ok := appErr.Details["retry_after"]; ok {
			body["retryAfter"] = retry
		} else if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		c.JSON(appErr.HTTPStatus(), body)
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// SendValidationError writes the 400 response for a failed request binding.
func SendValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
}

// SendSuccess writes payload with the given status.
func SendSuccess(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}
