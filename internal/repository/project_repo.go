package repository

import (
	"context"

	"github.com/devporto/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectFilter struct {
	Category string
	Search   string
	OwnerID  *uuid.UUID
	SortBy   string // "newest" or "popular"
}

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	FindAll(ctx context.Context, filter ProjectFilter, offset, limit int) ([]*model.Project, int64, error)
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	FindTrending(ctx context.Context, limit int) ([]*model.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("id = ?", id).
		First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindAll(ctx context.Context, filter ProjectFilter, offset, limit int) ([]*model.Project, int64, error) {
	var projects []*model.Project
	var total int64

	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("is_public = ?", true)

	if filter.OwnerID != nil {
		query = query.Where("user_id = ?", filter.OwnerID)
	}

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	if filter.Search != "" {
		query = query.Where("title ILIKE ? OR description ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if err := query.Model(&model.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.SortBy == "popular" {
		query = query.Order("likes_count DESC").Order("created_at DESC")
	} else {
		query = query.Order("created_at DESC")
	}

	if err := query.Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

func (r *projectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Project{}, "id = ?", id).Error
}

func (r *projectRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Project{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Project{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *projectRepository) FindTrending(ctx context.Context, limit int) ([]*model.Project, error) {
	var projects []*model.Project
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("is_public = ?", true).
		Order("likes_count DESC").
		Order("views DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}
