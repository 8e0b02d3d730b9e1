package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flushfinder-api/apperr"
)

// respondError maps the error taxonomy onto HTTP responses. External
// failures are logged with their cause but the client only ever sees
// the generic retry message.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	if ve, ok := apperr.IsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": ve.Fields})
		return
	}
	if errors.Is(err, apperr.ErrAuthRequired) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign-in required", "signIn": true})
		return
	}
	if errors.Is(err, apperr.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": "you can only change your own listings"})
		return
	}
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var ese *apperr.ExternalServiceError
	if errors.As(err, &ese) {
		log.Error("external service call failed",
			zap.String("service", ese.Service),
			zap.Error(ese.Err))
		c.JSON(http.StatusBadGateway, gin.H{"error": ese.Message()})
		return
	}

	log.Error("unhandled error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
}
