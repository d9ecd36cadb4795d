package dto

import (
	commonDto "github.com/devporto/backend/pkg/dto"
	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	ProjectID string `json:"project_id" binding:"required,uuid"`
	ParentID  string `json:"parent_id" binding:"omitempty,uuid"`
	Content   string `json:"content" binding:"required,max=500"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,max=500"`
}

type CommentResponse struct {
	ID         uuid.UUID                `json:"id"`
	ProjectID  uuid.UUID                `json:"project_id"`
	ParentID   *uuid.UUID               `json:"parent_id,omitempty"`
	Content    string                   `json:"content"`
	Author     commonDto.AuthorResponse `json:"author"`
	LikesCount int64                    `json:"likes_count"`
	Replies    []*CommentResponse       `json:"replies,omitempty"`
	CreatedAt  string                   `json:"created_at"`
	UpdatedAt  string                   `json:"updated_at"`
}
