package repository

import (
	"context"

	"github.com/devporto/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FollowRepository interface {
	// Create inserts the follow pair; a duplicate pair surfaces as
	// gorm.ErrDuplicatedKey via the composite unique index.
	Create(ctx context.Context, follow *model.Follow) error
	// Delete removes the pair and reports whether it existed.
	Delete(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error)
	FindFollowers(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*model.Follow, int64, error)
	FindFollowing(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*model.Follow, int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Create(ctx context.Context, follow *model.Follow) error {
	return r.db.WithContext(ctx).Create(follow).Error
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) FindFollowers(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*model.Follow, int64, error) {
	var follows []*model.Follow
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("following_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Follower").
		Preload("Follower.Profile").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&follows).Error
	return follows, total, err
}

func (r *followRepository) FindFollowing(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*model.Follow, int64, error) {
	var follows []*model.Follow
	var total int64

	query := r.db.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Following").
		Preload("Following.Profile").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&follows).Error
	return follows, total, err
}
