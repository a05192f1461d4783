package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwellhq/inkwell/services"
	"github.com/inkwellhq/inkwell/utils"
)

// NotificationController exposes the viewer's notification inbox.
type NotificationController struct {
	notifications *services.NotificationService
}

// NewNotificationController creates a NotificationController.
func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// List returns the viewer's notifications, newest first, with the unread count.
func (n *NotificationController) List(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := n.notifications.List(viewer.ID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	unread, err := n.notifications.UnreadCount(viewer.ID)
	if err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"notifications": items, "unread_count": unread})
}

// MarkRead marks one of the viewer's notifications as read.
func (n *NotificationController) MarkRead(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}
	notificationID, ok := parseIDParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "invalid notification id")
		return
	}

	if err := n.notifications.MarkRead(viewer.ID, notificationID); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Message(ctx, "notification marked read")
}

// MarkAllRead marks every notification of the viewer as read.
func (n *NotificationController) MarkAllRead(ctx *gin.Context) {
	viewer, ok := currentUser(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := n.notifications.MarkAllRead(viewer.ID); err != nil {
		utils.Fail(ctx, err)
		return
	}
	utils.Message(ctx, "all notifications marked read")
}
