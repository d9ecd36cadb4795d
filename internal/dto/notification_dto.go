package dto

import "github.com/devporto/backend/internal/model"

// NotificationsPage carries the current page plus the whole-inbox unread
// count, which is computed independently of the page.
type NotificationsPage struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unread_count"`
}
