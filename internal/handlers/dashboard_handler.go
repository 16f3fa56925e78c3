package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/feedback-service/internal/services"
	"github.com/SAP-F-2025/feedback-service/internal/utils"
)

type DashboardHandler struct {
	BaseHandler
	dashboardService services.DashboardService
	exportService    services.ExportService
}

func NewDashboardHandler(
	dashboardService services.DashboardService,
	exportService services.ExportService,
	logger utils.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:      NewBaseHandler(logger),
		dashboardService: dashboardService,
		exportService:    exportService,
	}
}

// GetDashboardStats returns the admin overview
// @Summary Get dashboard statistics
// @Description Total feedback, total students, and per-course average ratings
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.DashboardResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /admin/dashboard [get]
func (h *DashboardHandler) GetDashboardStats(c *gin.Context) {
	h.LogRequest(c, "Getting dashboard stats")

	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportFeedback downloads all feedback as a report file
// @Summary Export feedback
// @Description Download every feedback record as CSV (default) or XLSX
// @Tags dashboard
// @Produce text/csv
// @Param format query string false "Export format: csv or xlsx (default: csv)"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Unknown format"
// @Router /admin/export-feedback [get]
func (h *DashboardHandler) ExportFeedback(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	h.LogRequest(c, "Exporting feedback", "format", format)

	filename := fmt.Sprintf("feedback-%s", time.Now().Format("2006-01-02"))

	switch format {
	case "csv":
		data, err := h.exportService.ExportCSV(c.Request.Context())
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
		c.Data(http.StatusOK, "text/csv", data)

	case "xlsx":
		data, err := h.exportService.ExportXLSX(c.Request.Context())
		if err != nil {
			h.handleServiceError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", filename))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid format parameter",
			Details: "Format must be 'csv' or 'xlsx'",
		})
	}
}
