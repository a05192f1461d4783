package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/models"
)

// ReportService handles moderation reports and their admin workflow.
type ReportService struct {
	db       *gorm.DB
	notifier *NotificationService
}

// NewReportService creates a ReportService.
func NewReportService(db *gorm.DB, notifier *NotificationService) *ReportService {
	return &ReportService{db: db, notifier: notifier}
}

var validReportTargets = map[string]bool{
	models.ReportTargetBlog:    true,
	models.ReportTargetComment: true,
	models.ReportTargetUser:    true,
}

var validReportStatuses = map[string]bool{
	models.ReportOpen:     true,
	models.ReportInReview: true,
	models.ReportResolved: true,
	models.ReportRejected: true,
}

// Create files a report against a blog, comment or user. The target must
// resolve to an existing entity.
func (r *ReportService) Create(reporter models.User, targetType string, targetID uint, reason string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ValidationError("report reason cannot be empty")
	}
	if !validReportTargets[targetType] {
		return nil, ValidationError("invalid report target type")
	}

	var err error
	switch targetType {
	case models.ReportTargetBlog:
		err = r.db.First(&models.Blog{}, targetID).Error
	case models.ReportTargetComment:
		err = r.db.First(&models.Comment{}, targetID).Error
	case models.ReportTargetUser:
		err = r.db.First(&models.User{}, targetID).Error
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("report target not found")
		}
		return nil, InternalError("failed to resolve report target", err)
	}

	report := models.Report{
		ReporterID:       reporter.ID,
		ReporterUsername: reporter.Username,
		TargetType:       targetType,
		TargetID:         targetID,
		Reason:           reason,
		Status:           models.ReportOpen,
	}
	if err := r.db.Create(&report).Error; err != nil {
		return nil, InternalError("failed to create report", err)
	}
	return &report, nil
}

// List returns reports for the admin console, optionally filtered by status,
// newest first.
func (r *ReportService) List(status string) ([]models.Report, error) {
	query := r.db.Model(&models.Report{}).Order("created_at DESC")
	if status != "" {
		if !validReportStatuses[status] {
			return nil, ValidationError("invalid report status")
		}
		query = query.Where("status = ?", status)
	}
	var reports []models.Report
	if err := query.Find(&reports).Error; err != nil {
		return nil, InternalError("failed to list reports", err)
	}
	return reports, nil
}

// UpdateStatus moves a report through the moderation workflow and notifies
// the reporter. Reports are resolved in place, never deleted.
func (r *ReportService) UpdateStatus(admin models.User, reportID uint, status, adminNote string) (*models.Report, error) {
	if !admin.IsAdmin() {
		return nil, ForbiddenError("admin role required")
	}
	if !validReportStatuses[status] {
		return nil, ValidationError("invalid report status")
	}

	var report models.Report
	if err := r.db.First(&report, reportID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NotFoundError("report not found")
		}
		return nil, InternalError("failed to load report", err)
	}

	report.Status = status
	report.AdminNote = strings.TrimSpace(adminNote)
	if err := r.db.Save(&report).Error; err != nil {
		return nil, InternalError("failed to update report", err)
	}

	r.notifier.Emit(report.ReporterID, admin, models.NotificationReportUpdate,
		fmt.Sprintf("your report #%d is now %s", report.ID, status), nil, nil)

	return &report, nil
}
