package services

import (
	"testing"

	"github.com/inkwellhq/inkwell/models"
)

func TestCreateReport(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	reporter := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "spam post")

	report, err := svc.Create(reporter, models.ReportTargetBlog, blog.ID, "this is spam")
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if report.Status != models.ReportOpen || report.ReporterUsername != "bob" {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestCreateReportValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	reporter := createUser(t, db, "bob", models.RoleUser)
	blog := createBlog(t, db, author, "post")

	if _, err := svc.Create(reporter, models.ReportTargetBlog, blog.ID, "  "); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for empty reason, got %v", err)
	}
	if _, err := svc.Create(reporter, "tweet", blog.ID, "reason"); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for bad target type, got %v", err)
	}
	if _, err := svc.Create(reporter, models.ReportTargetComment, 9999, "reason"); KindOf(err) != KindNotFound {
		t.Fatalf("expected not found for missing target, got %v", err)
	}
}

func TestReportModerationFlow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	reporter := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "root", models.RoleAdmin)
	blog := createBlog(t, db, author, "spam post")

	report, err := svc.Create(reporter, models.ReportTargetBlog, blog.ID, "spam")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.UpdateStatus(reporter, report.ID, models.ReportResolved, ""); KindOf(err) != KindForbidden {
		t.Fatalf("expected forbidden for non-admin, got %v", err)
	}
	if _, err := svc.UpdateStatus(admin, report.ID, "escalated", ""); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}

	updated, err := svc.UpdateStatus(admin, report.ID, models.ReportResolved, "taken down")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.ReportResolved || updated.AdminNote != "taken down" {
		t.Fatalf("unexpected report: %+v", updated)
	}
	// Resolved in place, never deleted.
	if n := countRows(t, db, &models.Report{}, ""); n != 1 {
		t.Fatalf("expected report row to survive, got %d", n)
	}
	if n := countRows(t, db, &models.Notification{}, "user_id = ? AND type = ?", reporter.ID, models.NotificationReportUpdate); n != 1 {
		t.Fatalf("expected report update notification, got %d", n)
	}
}

func TestListReportsByStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db, NewNotificationService(db))

	author := createUser(t, db, "alice", models.RoleUser)
	reporter := createUser(t, db, "bob", models.RoleUser)
	admin := createUser(t, db, "root", models.RoleAdmin)
	blog := createBlog(t, db, author, "post")

	first, err := svc.Create(reporter, models.ReportTargetBlog, blog.ID, "spam")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(reporter, models.ReportTargetUser, author.ID, "abuse"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateStatus(admin, first.ID, models.ReportRejected, ""); err != nil {
		t.Fatalf("update: %v", err)
	}

	open, err := svc.List(models.ReportOpen)
	if err != nil {
		t.Fatalf("list open: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open report, got %d", len(open))
	}

	all, err := svc.List("")
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(all))
	}

	if _, err := svc.List("weird"); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for bad filter, got %v", err)
	}
}
