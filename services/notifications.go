package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/inkwellhq/inkwell/models"
)

// NotificationService owns notification fanout and inbox reads. Emit is the
// single entry point every action goes through, so the self-notification
// guard cannot be bypassed at a call site.
type NotificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Emit creates a notification for recipientID about an action by actor.
// It is a no-op when recipient and actor are the same user, and best-effort
// otherwise: persistence failures are logged and swallowed so the triggering
// action still succeeds.
func (n *NotificationService) Emit(recipientID uint, actor models.User, ntype, message string, blogID, commentID *uint) {
	if recipientID == 0 || recipientID == actor.ID {
		return
	}
	notif := models.Notification{
		UserID:        recipientID,
		ActorID:       actor.ID,
		ActorUsername: actor.Username,
		Type:          ntype,
		Message:       message,
		BlogID:        blogID,
		CommentID:     commentID,
	}
	if err := n.db.Create(&notif).Error; err != nil {
		zap.S().Warnf("notification emit failed recipient=%d actor=%d type=%s err=%v", recipientID, actor.ID, ntype, err)
	}
}

// List returns the recipient's notifications, newest first.
func (n *NotificationService) List(userID uint) ([]models.Notification, error) {
	var items []models.Notification
	if err := n.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, InternalError("failed to list notifications", err)
	}
	return items, nil
}

// UnreadCount returns how many notifications the recipient has not read yet.
func (n *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	if err := n.db.Model(&models.Notification{}).Where("user_id = ? AND `read` = ?", userID, false).Count(&count).Error; err != nil {
		return 0, InternalError("failed to count notifications", err)
	}
	return count, nil
}

// MarkRead marks one notification as read. Only the recipient may do so.
func (n *NotificationService) MarkRead(userID, notificationID uint) error {
	var notif models.Notification
	if err := n.db.First(&notif, notificationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return NotFoundError("notification not found")
		}
		return InternalError("failed to load notification", err)
	}
	if notif.UserID != userID {
		return ForbiddenError("not your notification")
	}
	if notif.Read {
		return nil
	}
	if err := n.db.Model(&notif).Update("read", true).Error; err != nil {
		return InternalError("failed to mark notification read", err)
	}
	return nil
}

// MarkAllRead marks every unread notification of the recipient as read.
func (n *NotificationService) MarkAllRead(userID uint) error {
	err := n.db.Model(&models.Notification{}).
		Where("user_id = ? AND `read` = ?", userID, false).
		Update("read", true).Error
	if err != nil {
		return InternalError("failed to mark notifications read", err)
	}
	return nil
}
