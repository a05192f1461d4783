package models

import "time"

// Notification types emitted by user actions.
const (
	NotificationLike         = "like"
	NotificationComment      = "comment"
	NotificationReply        = "reply"
	NotificationFollow       = "follow"
	NotificationMention      = "mention"
	NotificationReportUpdate = "report_update"
)

// Notification is delivered to UserID when ActorID acted on their content or
// profile. Never created with UserID == ActorID.
type Notification struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"user_id"`
	ActorID       uint      `gorm:"not null" json:"actor_id"`
	ActorUsername string    `gorm:"size:64;not null" json:"actor_username"`
	Type          string    `gorm:"size:16;not null" json:"type"`
	Message       string    `gorm:"size:512;not null" json:"message"`
	BlogID        *uint     `json:"blog_id"`
	CommentID     *uint     `json:"comment_id"`
	Read          bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
}
