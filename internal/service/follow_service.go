package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/internal/model"
	"github.com/devporto/backend/internal/repository"
	"github.com/devporto/backend/pkg/apperror"
	commonDto "github.com/devporto/backend/pkg/dto"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowService interface {
	Follow(ctx context.Context, followerID, followingID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error
	GetFollowers(ctx context.Context, userID uuid.UUID, filter commonDto.PageFilter) ([]dto.FollowEntryResponse, commonDto.PaginationMeta, error)
	GetFollowing(ctx context.Context, userID uuid.UUID, filter commonDto.PageFilter) ([]dto.FollowEntryResponse, commonDto.PaginationMeta, error)
	CheckFollowStatus(ctx context.Context, followerID, followingID uuid.UUID) (*dto.FollowStatusResponse, error)
}

type followService struct {
	followRepo    repository.FollowRepository
	userRepo      repository.UserRepository
	notifications NotificationService
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, notifications NotificationService) FollowService {
	return &followService{
		followRepo:    followRepo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followingID uuid.UUID) error {
	if followerID == followingID {
		return fmt.Errorf("%w: you cannot follow yourself", apperror.ErrInvalidInput)
	}

	target, err := s.userRepo.FindByID(ctx, followingID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return err
	}

	follow := &model.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: you are already following this user", apperror.ErrConflict)
		}
		return err
	}

	if s.notifications != nil {
		notification := &model.Notification{
			UserID:     target.ID,
			ActorID:    followerID,
			EntityID:   followerID,
			EntityType: "user",
			Type:       model.NotificationTypeFollow,
			Message:    "Someone started following you",
		}
		if err := s.notifications.CreateNotification(ctx, notification); err != nil {
			log.Printf("failed to create follow notification: %v", err)
		}
	}

	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followingID uuid.UUID) error {
	existed, err := s.followRepo.Delete(ctx, followerID, followingID)
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("%w: you are not following this user", apperror.ErrNotFound)
	}
	return nil
}

func (s *followService) GetFollowers(ctx context.Context, userID uuid.UUID, filter commonDto.PageFilter) ([]dto.FollowEntryResponse, commonDto.PaginationMeta, error) {
	filter.Normalize()

	if _, err := s.userRepo.FindByID(ctx, userID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonDto.PaginationMeta{}, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, commonDto.PaginationMeta{}, err
	}

	follows, total, err := s.followRepo.FindFollowers(ctx, userID, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, commonDto.PaginationMeta{}, err
	}

	entries := make([]dto.FollowEntryResponse, 0, len(follows))
	for _, f := range follows {
		entries = append(entries, mapFollowEntry(&f.Follower, f.CreatedAt))
	}

	return entries, commonDto.NewPaginationMeta(filter.Page, filter.Limit, total), nil
}

func (s *followService) GetFollowing(ctx context.Context, userID uuid.UUID, filter commonDto.PageFilter) ([]dto.FollowEntryResponse, commonDto.PaginationMeta, error) {
	filter.Normalize()

	if _, err := s.userRepo.FindByID(ctx, userID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonDto.PaginationMeta{}, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, commonDto.PaginationMeta{}, err
	}

	follows, total, err := s.followRepo.FindFollowing(ctx, userID, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, commonDto.PaginationMeta{}, err
	}

	entries := make([]dto.FollowEntryResponse, 0, len(follows))
	for _, f := range follows {
		entries = append(entries, mapFollowEntry(&f.Following, f.CreatedAt))
	}

	return entries, commonDto.NewPaginationMeta(filter.Page, filter.Limit, total), nil
}

func (s *followService) CheckFollowStatus(ctx context.Context, followerID, followingID uuid.UUID) (*dto.FollowStatusResponse, error) {
	exists, err := s.followRepo.Exists(ctx, followerID, followingID)
	if err != nil {
		return nil, err
	}
	return &dto.FollowStatusResponse{IsFollowing: exists}, nil
}

func mapFollowEntry(user *model.User, followedAt time.Time) dto.FollowEntryResponse {
	entry := dto.FollowEntryResponse{
		ID:         user.ID,
		Username:   user.Username,
		AvatarURL:  user.AvatarURL,
		FollowedAt: followedAt.Format(time.RFC3339),
	}
	if user.Profile != nil {
		entry.FullName = user.Profile.FullName
		entry.Bio = user.Profile.Bio
	}
	return entry
}
