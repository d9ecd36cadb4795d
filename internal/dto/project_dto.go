package dto

import (
	commonDto "github.com/devporto/backend/pkg/dto"
	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Description string   `json:"description" binding:"required,max=5000"`
	Category    string   `json:"category" binding:"required,oneof=web mobile ai design other"`
	MediaURLs   []string `json:"media_urls" binding:"omitempty,max=10,dive,url"`
	IsPublic    *bool    `json:"is_public"`
}

type UpdateProjectRequest struct {
	Title       string   `json:"title" binding:"omitempty,max=255"`
	Description string   `json:"description" binding:"omitempty,max=5000"`
	Category    string   `json:"category" binding:"omitempty,oneof=web mobile ai design other"`
	MediaURLs   []string `json:"media_urls" binding:"omitempty,max=10,dive,url"`
	IsPublic    *bool    `json:"is_public"`
}

type RateProjectRequest struct {
	Value   int    `json:"value" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"omitempty,max=500"`
}

type ProjectFilter struct {
	Category string `form:"category" binding:"omitempty,oneof=web mobile ai design other"`
	Search   string `form:"search"`
	Username string `form:"username"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=newest popular"`
	commonDto.PageFilter
}

type RatingResponse struct {
	Rater     commonDto.AuthorResponse `json:"rater"`
	Value     int                      `json:"value"`
	Comment   string                   `json:"comment,omitempty"`
	CreatedAt string                   `json:"created_at"`
}

type ProjectResponse struct {
	ID            uuid.UUID                `json:"id"`
	Title         string                   `json:"title"`
	Description   string                   `json:"description"`
	Category      string                   `json:"category"`
	MediaURLs     []string                 `json:"media_urls,omitempty"`
	Author        commonDto.AuthorResponse `json:"author"`
	AverageRating float64                  `json:"average_rating"`
	TotalRatings  int64                    `json:"total_ratings"`
	LikesCount    int64                    `json:"likes_count"`
	Views         int64                    `json:"views"`
	IsPublic      bool                     `json:"is_public"`
	Ratings       []RatingResponse         `json:"ratings,omitempty"`
	IsLiked       *bool                    `json:"is_liked,omitempty"`
	CreatedAt     string                   `json:"created_at"`
	UpdatedAt     string                   `json:"updated_at"`
}

type LikeStatusResponse struct {
	LikesCount int64 `json:"likes_count"`
	IsLiked    bool  `json:"is_liked"`
}
