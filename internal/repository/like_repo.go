package repository

import (
	"context"

	"github.com/devporto/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LikeRepository interface {
	// ToggleProjectLike removes the like if present, inserts it otherwise,
	// then recomputes the project's likes_count from the like rows inside
	// the same transaction. Returns the post-toggle state.
	ToggleProjectLike(ctx context.Context, userID, projectID uuid.UUID) (liked bool, count int64, err error)
	ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (liked bool, count int64, err error)
	IsProjectLiked(ctx context.Context, userID, projectID uuid.UUID) (bool, error)
	IsCommentLiked(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) ToggleProjectLike(ctx context.Context, userID, projectID uuid.UUID) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND project_id = ?", userID, projectID).
			Delete(&model.ProjectLike{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			like := model.ProjectLike{UserID: userID, ProjectID: projectID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			liked = true
		}

		if err := tx.Model(&model.ProjectLike{}).
			Where("project_id = ?", projectID).
			Count(&count).Error; err != nil {
			return err
		}

		return tx.Model(&model.Project{}).
			Where("id = ?", projectID).
			UpdateColumn("likes_count", count).Error
	})

	return liked, count, err
}

func (r *likeRepository) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, int64, error) {
	var liked bool
	var count int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND comment_id = ?", userID, commentID).
			Delete(&model.CommentLike{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			like := model.CommentLike{UserID: userID, CommentID: commentID}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			liked = true
		}

		if err := tx.Model(&model.CommentLike{}).
			Where("comment_id = ?", commentID).
			Count(&count).Error; err != nil {
			return err
		}

		return tx.Model(&model.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("likes_count", count).Error
	})

	return liked, count, err
}

func (r *likeRepository) IsProjectLiked(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ProjectLike{}).
		Where("user_id = ? AND project_id = ?", userID, projectID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) IsCommentLiked(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CommentLike{}).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
