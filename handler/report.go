package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"flushfinder-api/middleware"
	"flushfinder-api/model"
)

// ReportStore files flags against listings.
type ReportStore interface {
	Create(ctx context.Context, washroomID, reporterID string) (model.Report, error)
}

// ReportHandler lets visitors flag incorrect or inappropriate entries.
type ReportHandler struct {
	Reports ReportStore
	Log     *zap.Logger
}

// CreateReport files a report against the washroom in the path. Signed
// in callers are recorded as the reporter; everyone else reports
// anonymously.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	reporter := c.GetString(middleware.ContextUID)
	if reporter == "" {
		reporter = model.AnonymousReporter
	}

	report, err := h.Reports.Create(c.Request.Context(), c.Param("id"), reporter)
	if err != nil {
		respondError(c, h.Log, err)
		return
	}

	h.Log.Info("washroom reported",
		zap.String("washroomId", report.WashroomID),
		zap.String("reporterId", report.ReporterID))
	c.JSON(http.StatusCreated, gin.H{"message": "Report submitted", "report": report})
}
