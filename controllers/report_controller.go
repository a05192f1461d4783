package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/services"
	"github.com/inkwellhq/inkwell/utils"
)

// ReportController handles user reports and their moderation lifecycle.
type ReportController struct {
	reports *services.ReportService
}

// NewReportController creates a ReportController.
func NewReportController(reports *services.ReportService) *ReportController {
	return &ReportController{reports: reports}
}

// Create files a report against a blog, comment or user.
func (r *ReportController) Create(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		TargetType string `json:"target_type" binding:"required"`
		TargetID   uint   `json:"target_id" binding:"required"`
		Reason     string `json:"reason" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	report, err := r.reports.Create(viewer, strings.ToLower(strings.TrimSpace(req.TargetType)), req.TargetID, utils.SanitizeStrict(req.Reason))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Created(ctx, gin.H{"report": report})
}

// List returns reports for moderators, optionally filtered by status.
func (r *ReportController) List(ctx *gin.Context) {
	reports, err := r.reports.List(strings.TrimSpace(ctx.Query("status")))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"reports": reports})
}

// UpdateStatus moves a report through its moderation lifecycle. The reporter
// is notified about the new status.
func (r *ReportController) UpdateStatus(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	reportID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid report id")
		return
	}

	var req struct {
		Status    string `json:"status" binding:"required"`
		AdminNote string `json:"admin_note"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "invalid request payload")
		return
	}

	report, err := r.reports.UpdateStatus(viewer, reportID, strings.ToLower(strings.TrimSpace(req.Status)), utils.SanitizeStrict(req.AdminNote))
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"report": report})
}
