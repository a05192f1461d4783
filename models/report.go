package models

import "time"

// Report target types and statuses.
const (
	ReportTargetBlog    = "blog"
	ReportTargetComment = "comment"
	ReportTargetUser    = "user"

	ReportOpen     = "open"
	ReportInReview = "in_review"
	ReportResolved = "resolved"
	ReportRejected = "rejected"
)

// Report is a moderation request filed by a user against a blog, comment or
// user. Reports are resolved in place, never deleted.
type Report struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ReporterID       uint      `gorm:"index;not null" json:"reporter_id"`
	ReporterUsername string    `gorm:"size:64;not null" json:"reporter_username"`
	TargetType       string    `gorm:"size:16;not null" json:"target_type"`
	TargetID         uint      `gorm:"not null" json:"target_id"`
	Reason           string    `gorm:"size:512;not null" json:"reason"`
	Status           string    `gorm:"size:16;not null;default:'open';index" json:"status"`
	AdminNote        string    `gorm:"size:512" json:"admin_note"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
