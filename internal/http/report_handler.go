package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reading-persona/internal/service"
)

const maxSimilarReaders = 20

// ReportHandler expone la generacion y lectura de reportes.
type ReportHandler struct {
	logger  *zap.Logger
	reports *service.ReportService
}

func NewReportHandler(logger *zap.Logger, reports *service.ReportService) *ReportHandler {
	return &ReportHandler{logger: logger, reports: reports}
}

type generateReportRequest struct {
	SelectedBookIDs []string `json:"selected_book_ids"`
}

type generateFunc func(ctx context.Context, userID string, selectedBookIDs []string) (service.ReportOutcome, error)

// Generate maneja POST /onboarding/report/generate.
func (h *ReportHandler) Generate(c *gin.Context) {
	h.generate(c, "generate report", h.reports.GenerateReport)
}

// Regenerate maneja POST /onboarding/report/regenerate.
func (h *ReportHandler) Regenerate(c *gin.Context) {
	h.generate(c, "regenerate report", h.reports.RegenerateReport)
}

func (h *ReportHandler) generate(c *gin.Context, op string, fn generateFunc) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req generateReportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid report request", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	outcome, err := fn(c.Request.Context(), userID, req.SelectedBookIDs)
	if err != nil {
		writeServiceError(c, h.logger, op, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"report":               outcome.Report,
		"narrative_degraded":   outcome.NarrativeDegraded,
		"persistence_degraded": outcome.PersistenceDegraded,
	})
}

// Get maneja GET /onboarding/report.
func (h *ReportHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	report, err := h.reports.GetReport(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, h.logger, "get report", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// Similar maneja GET /onboarding/report/similar?limit=N.
func (h *ReportHandler) Similar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit := 5
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = min(n, maxSimilarReaders)
	}

	readers, err := h.reports.FindSimilarReaders(c.Request.Context(), userID, limit)
	if err != nil {
		writeServiceError(c, h.logger, "similar readers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"readers": readers})
}
