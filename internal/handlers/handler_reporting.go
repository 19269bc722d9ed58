package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/dianadimla/walo_backend/internal/core/ports/services"
	"github.com/dianadimla/walo_backend/internal/dto"
	"github.com/dianadimla/walo_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves the dashboard aggregates.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getBudgetSummary)
		reports.GET("/pods", h.getPodReports)
	}
}

// getBudgetSummary godoc
// @Summary Budget summary
// @Description Returns the total budget across all pods and the most recent transactions.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.BudgetSummaryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build summary"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getBudgetSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.reportingService.GetBudgetSummary(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build budget summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBudgetSummaryResponse(summary))
}

// getPodReports godoc
// @Summary Per-pod reports
// @Description Returns balance, spend, and progress figures for each pod.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.PodReportsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build reports"
// @Security BearerAuth
// @Router /reports/pods [get]
func (h *reportingHandler) getPodReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reports, err := h.reportingService.GetPodReports(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to build pod reports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to build reports"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPodReportsResponse(reports))
}
