package controllers

import (
	"net/http"

	"art-gallery-service/services"

	"github.com/gin-gonic/gin"
)

// ReportController exposes the staff-only order/user projection. Route-level
// middleware enforces the staff requirement.
type ReportController struct {
	reportService *services.ReportService
}

func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

func (rc *ReportController) List(ctx *gin.Context) {
	rows, svcErr := rc.reportService.ListOrders(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"orders": rows})
}

func (rc *ReportController) GroupedByUser(ctx *gin.Context) {
	groups, svcErr := rc.reportService.GroupedByUser(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"users": groups})
}
