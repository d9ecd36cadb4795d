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
	"github.com/devporto/backend/pkg/ratelimit"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CommentService interface {
	AddComment(ctx context.Context, userID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComments(ctx context.Context, projectID uuid.UUID, viewerID *uuid.UUID, filter commonDto.PageFilter) ([]*dto.CommentResponse, commonDto.PaginationMeta, error)
	UpdateComment(ctx context.Context, userID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error
	ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (*dto.LikeStatusResponse, error)
}

type commentService struct {
	commentRepo   repository.CommentRepository
	projectRepo   repository.ProjectRepository
	userRepo      repository.UserRepository
	likeRepo      repository.LikeRepository
	notifications NotificationService
	redisClient   *redis.Client
}

func NewCommentService(commentRepo repository.CommentRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, likeRepo repository.LikeRepository, notifications NotificationService, redisClient *redis.Client) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		projectRepo:   projectRepo,
		userRepo:      userRepo,
		likeRepo:      likeRepo,
		notifications: notifications,
		redisClient:   redisClient,
	}
}

func (s *commentService) AddComment(ctx context.Context, userID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	// Comment cooldown
	limit := ratelimit.DurationFromEnv("RATE_LIMIT_COMMENT", 5*time.Second)
	allowed, err := ratelimit.CheckAndSet(ctx, s.redisClient, userID, "comment", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimit.TTL(ctx, s.redisClient, userID, "comment")
		return nil, &ratelimit.RateLimitError{
			Message:    fmt.Sprintf("you are commenting too fast. Please wait %.0f seconds", ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	creationFailed := true
	defer func() {
		if creationFailed {
			_ = ratelimit.Clear(ctx, s.redisClient, userID, "comment")
		}
	}()

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid project id", apperror.ErrInvalidInput)
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	// A private project is indistinguishable from an absent one.
	if !project.IsPublic && project.UserID != userID {
		return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
	}

	var parentID *uuid.UUID
	var parent *model.Comment
	if req.ParentID != "" {
		pid, err := uuid.Parse(req.ParentID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid parent id", apperror.ErrInvalidInput)
		}

		parent, err = s.commentRepo.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: parent comment not found", apperror.ErrNotFound)
			}
			return nil, err
		}

		if parent.ProjectID != projectID {
			return nil, fmt.Errorf("%w: parent comment belongs to another project", apperror.ErrInvalidInput)
		}

		// The thread model is two levels deep: a reply's parent must itself
		// be a top-level comment.
		if parent.ParentID != nil {
			return nil, fmt.Errorf("%w: replies cannot be nested", apperror.ErrInvalidInput)
		}

		parentID = &pid
	}

	comment := &model.Comment{
		ProjectID: projectID,
		UserID:    userID,
		ParentID:  parentID,
		Content:   req.Content,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	creationFailed = false

	// Fan-out runs after the comment is committed; a failed notification
	// never fails the comment.
	s.notifyComment(ctx, userID, project, parent, comment)

	author, err := s.userRepo.FindByID(ctx, userID.String())
	if err == nil {
		comment.User = *author
	}

	return s.mapToResponse(comment), nil
}

func (s *commentService) notifyComment(ctx context.Context, actorID uuid.UUID, project *model.Project, parent *model.Comment, comment *model.Comment) {
	if s.notifications == nil {
		return
	}

	title := project.Title
	if len(title) > 40 {
		title = title[:40] + "..."
	}

	// A reply notifies the parent comment's author; the project owner gets
	// the generic notification unless the reply one already reached them.
	// Nobody is notified about their own comment, or twice for one comment.
	ownerNotified := false
	if parent != nil && parent.UserID != actorID {
		notification := &model.Notification{
			UserID:     parent.UserID,
			ActorID:    actorID,
			EntityID:   comment.ID,
			EntityType: "comment",
			Type:       model.NotificationTypeComment,
			Message:    fmt.Sprintf("Someone replied to your comment on '%s'", title),
		}
		if err := s.notifications.CreateNotification(ctx, notification); err != nil {
			log.Printf("failed to create reply notification: %v", err)
		}
		ownerNotified = parent.UserID == project.UserID
	}

	if project.UserID != actorID && !ownerNotified {
		notification := &model.Notification{
			UserID:     project.UserID,
			ActorID:    actorID,
			EntityID:   comment.ID,
			EntityType: "comment",
			Type:       model.NotificationTypeComment,
			Message:    fmt.Sprintf("Someone commented on your project '%s'", title),
		}
		if err := s.notifications.CreateNotification(ctx, notification); err != nil {
			log.Printf("failed to create comment notification: %v", err)
		}
	}
}

func (s *commentService) GetComments(ctx context.Context, projectID uuid.UUID, viewerID *uuid.UUID, filter commonDto.PageFilter) ([]*dto.CommentResponse, commonDto.PaginationMeta, error) {
	filter.Normalize()

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, commonDto.PaginationMeta{}, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
		}
		return nil, commonDto.PaginationMeta{}, err
	}

	if !project.IsPublic && (viewerID == nil || project.UserID != *viewerID) {
		return nil, commonDto.PaginationMeta{}, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
	}

	// Total counts only top-level comments; replies ride along unpaginated.
	total, err := s.commentRepo.CountTopLevel(ctx, projectID)
	if err != nil {
		return nil, commonDto.PaginationMeta{}, err
	}

	topLevel, err := s.commentRepo.FindTopLevel(ctx, projectID, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, commonDto.PaginationMeta{}, err
	}

	parentIDs := make([]uuid.UUID, 0, len(topLevel))
	nodes := make(map[uuid.UUID]*dto.CommentResponse, len(topLevel))
	roots := make([]*dto.CommentResponse, 0, len(topLevel))

	for _, c := range topLevel {
		node := s.mapToResponse(c)
		nodes[c.ID] = node
		roots = append(roots, node)
		parentIDs = append(parentIDs, c.ID)
	}

	replies, err := s.commentRepo.FindReplies(ctx, parentIDs)
	if err != nil {
		return nil, commonDto.PaginationMeta{}, err
	}

	for _, reply := range replies {
		if parent, ok := nodes[*reply.ParentID]; ok {
			parent.Replies = append(parent.Replies, s.mapToResponse(reply))
		}
	}

	return roots, commonDto.NewPaginationMeta(filter.Page, filter.Limit, total), nil
}

func (s *commentService) UpdateComment(ctx context.Context, userID, commentID uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if comment.UserID != userID {
		return nil, fmt.Errorf("%w: you can only update your own comment", apperror.ErrForbidden)
	}

	comment.Content = req.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.mapToResponse(comment), nil
}

func (s *commentService) DeleteComment(ctx context.Context, userID, commentID uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: comment not found", apperror.ErrNotFound)
		}
		return err
	}

	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return fmt.Errorf("%w: user not found", apperror.ErrNotFound)
	}

	if comment.UserID != userID && !user.IsAdmin() {
		return fmt.Errorf("%w: you can only delete your own comment unless you are an admin", apperror.ErrForbidden)
	}

	return s.commentRepo.DeleteWithReplies(ctx, commentID)
}

func (s *commentService) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (*dto.LikeStatusResponse, error) {
	if _, err := s.commentRepo.FindByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	liked, count, err := s.likeRepo.ToggleCommentLike(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeStatusResponse{LikesCount: count, IsLiked: liked}, nil
}

func (s *commentService) mapToResponse(comment *model.Comment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        comment.ID,
		ProjectID: comment.ProjectID,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		Author: commonDto.AuthorResponse{
			ID:        comment.UserID,
			Username:  comment.User.Username,
			AvatarURL: comment.User.AvatarURL,
		},
		LikesCount: comment.LikesCount,
		CreatedAt:  comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  comment.UpdatedAt.Format(time.RFC3339),
	}
}
