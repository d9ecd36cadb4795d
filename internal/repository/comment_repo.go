package repository

import (
	"context"

	"github.com/devporto/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	// FindTopLevel returns top-level comments (no parent) newest-first.
	FindTopLevel(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]*model.Comment, error)
	CountTopLevel(ctx context.Context, projectID uuid.UUID) (int64, error)
	// FindReplies returns replies of the given parents oldest-first.
	FindReplies(ctx context.Context, parentIDs []uuid.UUID) ([]*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	// DeleteWithReplies removes the comment and every comment whose parent
	// it is, in one transaction.
	DeleteWithReplies(ctx context.Context, id uuid.UUID) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) FindTopLevel(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("project_id = ? AND parent_id IS NULL", projectID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountTopLevel(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("project_id = ? AND parent_id IS NULL", projectID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) FindReplies(ctx context.Context, parentIDs []uuid.UUID) ([]*model.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	var replies []*model.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) DeleteWithReplies(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("parent_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Comment{}, "id = ?", id).Error
	})
}
