package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devporto/backend/internal/model"
	"github.com/devporto/backend/pkg/apperror"
	commonDto "github.com/devporto/backend/pkg/dto"
	"github.com/google/uuid"
)

func seedNotifications(t *testing.T, repo *fakeNotificationRepo, userID uuid.UUID, n int) []*model.Notification {
	t.Helper()
	out := make([]*model.Notification, 0, n)
	for i := 0; i < n; i++ {
		notification := &model.Notification{
			UserID:     userID,
			ActorID:    uuid.New(),
			EntityID:   uuid.New(),
			EntityType: "project",
			Type:       model.NotificationTypeComment,
			Message:    "Someone commented on your project",
		}
		if err := repo.Create(context.Background(), notification); err != nil {
			t.Fatalf("seed notification: %v", err)
		}
		out = append(out, notification)
	}
	return out
}

func TestGetNotificationsUnreadCountSpansInbox(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	userID := uuid.New()
	seedNotifications(t, repo, userID, 15)

	page, meta, err := svc.GetNotifications(context.Background(), userID, commonDto.PageFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(page.Notifications) != 10 {
		t.Errorf("page size = %d, want 10", len(page.Notifications))
	}
	if page.UnreadCount != 15 {
		t.Errorf("unread = %d, want 15 across the whole inbox", page.UnreadCount)
	}
	if meta.Total != 15 || meta.Pages != 2 {
		t.Errorf("meta = total %d pages %d, want 15/2", meta.Total, meta.Pages)
	}
}

func TestMarkAllAsReadZeroesUnread(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	userID := uuid.New()
	other := uuid.New()
	seedNotifications(t, repo, userID, 3)
	seedNotifications(t, repo, other, 2)

	ctx := context.Background()
	if err := svc.MarkAllAsRead(ctx, userID); err != nil {
		t.Fatalf("mark all: %v", err)
	}

	count, err := svc.UnreadCount(ctx, userID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}

	// Another user's inbox is untouched.
	count, err = svc.UnreadCount(ctx, other)
	if err != nil {
		t.Fatalf("other count: %v", err)
	}
	if count != 2 {
		t.Errorf("other unread = %d, want 2", count)
	}
}

func TestMarkAsReadRecipientOnly(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	userID := uuid.New()
	notifications := seedNotifications(t, repo, userID, 1)

	ctx := context.Background()
	err := svc.MarkAsRead(ctx, uuid.New(), notifications[0].ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("stranger err = %v, want forbidden", err)
	}

	if err := svc.MarkAsRead(ctx, userID, notifications[0].ID); err != nil {
		t.Fatalf("recipient: %v", err)
	}
	// Idempotent.
	if err := svc.MarkAsRead(ctx, userID, notifications[0].ID); err != nil {
		t.Fatalf("second mark: %v", err)
	}
}

func TestMarkAsReadMissing(t *testing.T) {
	svc := NewNotificationService(newFakeNotificationRepo())
	err := svc.MarkAsRead(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestClearAllLeavesOtherInboxes(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	userID := uuid.New()
	other := uuid.New()
	seedNotifications(t, repo, userID, 4)
	seedNotifications(t, repo, other, 1)

	ctx := context.Background()
	if err := svc.ClearAll(ctx, userID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	page, meta, err := svc.GetNotifications(ctx, userID, commonDto.PageFilter{})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(page.Notifications) != 0 || meta.Total != 0 {
		t.Errorf("inbox not cleared: %d items", len(page.Notifications))
	}

	count, err := svc.UnreadCount(ctx, other)
	if err != nil {
		t.Fatalf("other count: %v", err)
	}
	if count != 1 {
		t.Errorf("other inbox lost notifications: %d", count)
	}
}

func TestDeleteNotificationOwnership(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo)
	userID := uuid.New()
	notifications := seedNotifications(t, repo, userID, 1)

	ctx := context.Background()
	err := svc.DeleteNotification(ctx, uuid.New(), notifications[0].ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("stranger err = %v, want forbidden", err)
	}
	if err := svc.DeleteNotification(ctx, userID, notifications[0].ID); err != nil {
		t.Fatalf("recipient delete: %v", err)
	}
}
