package repository

import (
	"context"

	"github.com/devporto/backend/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RatingRepository interface {
	// Create inserts the rating and recomputes the project's denormalized
	// average_rating/total_ratings from the rating rows, all in one
	// transaction. A duplicate (project, user) pair surfaces as
	// gorm.ErrDuplicatedKey via the composite unique index.
	Create(ctx context.Context, rating *model.Rating) error
	FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Rating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(ctx context.Context, rating *model.Rating) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return err
		}

		// Aggregates are derived from the rows, never incremented.
		var agg struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&model.Rating{}).
			Select("COALESCE(ROUND(AVG(value)::numeric, 1), 0) AS avg, COUNT(*) AS count").
			Where("project_id = ?", rating.ProjectID).
			Scan(&agg).Error; err != nil {
			return err
		}

		return tx.Model(&model.Project{}).
			Where("id = ?", rating.ProjectID).
			Updates(map[string]interface{}{
				"average_rating": agg.Avg,
				"total_ratings":  agg.Count,
			}).Error
	})
}

func (r *ratingRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Rating, error) {
	var ratings []model.Rating
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "avatar_url")
		}).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&ratings).Error
	return ratings, err
}
