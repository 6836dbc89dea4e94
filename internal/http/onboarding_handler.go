package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reading-persona/internal/domain"
	"reading-persona/internal/service"
)

// OnboardingHandler mantiene dependencias para los endpoints del onboarding.
type OnboardingHandler struct {
	logger *zap.Logger
	prefs  *service.PreferenceService
}

func NewOnboardingHandler(logger *zap.Logger, prefs *service.PreferenceService) *OnboardingHandler {
	return &OnboardingHandler{logger: logger, prefs: prefs}
}

// Genres maneja GET /onboarding/genres.
func (h *OnboardingHandler) Genres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"genres": service.Genres()})
}

// SavePreferences maneja POST /onboarding/preferences.
func (h *OnboardingHandler) SavePreferences(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req domain.PreferenceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid preferences request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	saved, err := h.prefs.SavePreferences(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, h.logger, "save preferences", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": saved})
}

// Status maneja GET /onboarding/status.
func (h *OnboardingHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	status, err := h.prefs.Status(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, h.logger, "onboarding status", err)
		return
	}
	c.JSON(http.StatusOK, status)
}
