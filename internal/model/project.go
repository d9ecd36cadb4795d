package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryWeb    = "web"
	CategoryMobile = "mobile"
	CategoryAI     = "ai"
	CategoryDesign = "design"
	CategoryOther  = "other"
)

type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    string    `gorm:"size:50;not null" json:"category"`
	MediaURLs   []string  `gorm:"serializer:json" json:"media_urls,omitempty"`

	// Denormalized aggregates, recomputed from rows on every mutating write.
	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	TotalRatings  int64   `gorm:"default:0" json:"total_ratings"`
	LikesCount    int64   `gorm:"default:0" json:"likes_count"`

	Views     int64     `gorm:"default:0" json:"views"`
	IsPublic  bool      `gorm:"default:true" json:"is_public"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

type Rating struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_project_user,priority:1" json:"project_id"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_project_user,priority:2" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Value     int       `gorm:"not null" json:"value"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type ProjectLike struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	ProjectID uuid.UUID `gorm:"type:uuid;primaryKey" json:"project_id"`
	Project   Project   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
