package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reading-persona/internal/service"
)

// writeServiceError traduce errores de servicio a status HTTP.
func writeServiceError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences", "fields": verr.Fields})
	case errors.Is(err, service.ErrInvalidPreferences):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid preferences"})
	case errors.Is(err, service.ErrPreferencesNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "complete onboarding first"})
	case errors.Is(err, service.ErrReportNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	case errors.Is(err, service.ErrServiceNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
	case errors.Is(err, context.Canceled):
		// el cliente ya se fue; 499 al estilo nginx para que quede en el log
		c.Status(499)
	default:
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
