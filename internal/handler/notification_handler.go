package handler

import (
	"net/http"

	"github.com/devporto/backend/internal/service"
	commonDto "github.com/devporto/backend/pkg/dto"
	"github.com/devporto/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	service service.NotificationService
}

func NewNotificationHandler(service service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var filter commonDto.PageFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		bindError(c, err)
		return
	}

	page, meta, err := h.service.GetNotifications(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessPaginated(c, page, meta)
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	notificationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), userID, notificationID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "notification marked as read")
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "all notifications marked as read")
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	notificationID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteNotification(c.Request.Context(), userID, notificationID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "notification deleted successfully")
}

func (h *NotificationHandler) ClearAll(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.ClearAll(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessMessage(c, http.StatusOK, "notifications cleared")
}
