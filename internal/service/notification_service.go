package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/internal/model"
	"github.com/devporto/backend/internal/repository"
	"github.com/devporto/backend/pkg/apperror"
	commonDto "github.com/devporto/backend/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationService interface {
	CreateNotification(ctx context.Context, notification *model.Notification) error
	GetNotifications(ctx context.Context, userID uuid.UUID, filter commonDto.PageFilter) (*dto.NotificationsPage, commonDto.PaginationMeta, error)
	MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	DeleteNotification(ctx context.Context, userID, notificationID uuid.UUID) error
	ClearAll(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) CreateNotification(ctx context.Context, notification *model.Notification) error {
	return s.repo.Create(ctx, notification)
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, filter commonDto.PageFilter) (*dto.NotificationsPage, commonDto.PaginationMeta, error) {
	filter.Normalize()

	notifications, total, err := s.repo.FindByUserID(ctx, userID, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, commonDto.PaginationMeta{}, err
	}

	// Unread count reflects the whole inbox, not the current page.
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, commonDto.PaginationMeta{}, err
	}

	if notifications == nil {
		notifications = []model.Notification{}
	}

	page := &dto.NotificationsPage{
		Notifications: notifications,
		UnreadCount:   unread,
	}
	return page, commonDto.NewPaginationMeta(filter.Page, filter.Limit, total), nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notification not found", apperror.ErrNotFound)
		}
		return err
	}

	if notification.UserID != userID {
		return fmt.Errorf("%w: you can only update your own notifications", apperror.ErrForbidden)
	}

	// Marking an already-read notification again is not an error.
	return s.repo.MarkAsRead(ctx, notificationID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) DeleteNotification(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: notification not found", apperror.ErrNotFound)
		}
		return err
	}

	if notification.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own notifications", apperror.ErrForbidden)
	}

	return s.repo.Delete(ctx, notificationID)
}

func (s *notificationService) ClearAll(ctx context.Context, userID uuid.UUID) error {
	return s.repo.DeleteAllByUserID(ctx, userID)
}
