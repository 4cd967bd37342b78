package handlers

import (
	"errors"
	"net/http"

	"merchandising_backend/internal/models"
	"merchandising_backend/internal/services"
	"merchandising_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// ClientDashboard returns the client's evidence report grouped by PDV and
// mission date. Query params: wilaya, region, pdv_search.
func (h *ReportHandler) ClientDashboard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var filters models.ReportFilters
	if v := c.Query("wilaya"); v != "" {
		filters.Wilaya = &v
	}
	if v := c.Query("region"); v != "" {
		filters.Region = &v
	}
	if v := c.Query("pdv_search"); v != "" {
		filters.PDVSearch = &v
	}

	report, err := h.reportService.BuildClientReport(actor, filters)
	if err != nil {
		if errors.Is(err, services.ErrNoClientContext) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Account is not linked to a client.", ""))
		} else {
			utils.LogError(err, "ClientDashboard: Error from reportService.BuildClientReport")
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build report.", ""))
		}
		return
	}
	c.JSON(http.StatusOK, report)
}
