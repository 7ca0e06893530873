package handlers

import (
	"net/http"

	"adminpanel/internal/domain"
	"adminpanel/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError binds and validates the body. Rule failures become a 400
// with per-field details, anything else a plain 400.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "request body is empty", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		translated := domain.TranslateValidation(err)
		if domain.IsValidation(translated) {
			RespondDomainError(c, translated)
			return false
		}
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
