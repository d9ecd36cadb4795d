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

type ProjectService interface {
	CreateProject(ctx context.Context, userID uuid.UUID, req dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetProject(ctx context.Context, projectID uuid.UUID, viewerID *uuid.UUID) (*dto.ProjectResponse, error)
	GetProjects(ctx context.Context, filter dto.ProjectFilter) ([]dto.ProjectResponse, commonDto.PaginationMeta, error)
	UpdateProject(ctx context.Context, userID, projectID uuid.UUID, req dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error

	AddRating(ctx context.Context, projectID, raterID uuid.UUID, req dto.RateProjectRequest) (*dto.ProjectResponse, error)
	ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (*dto.LikeStatusResponse, error)
	GetLikeStatus(ctx context.Context, projectID, userID uuid.UUID) (*dto.LikeStatusResponse, error)
}

type projectService struct {
	projectRepo repository.ProjectRepository
	ratingRepo  repository.RatingRepository
	likeRepo    repository.LikeRepository
	userRepo    repository.UserRepository
	search      SearchService
	redisClient *redis.Client
}

func NewProjectService(projectRepo repository.ProjectRepository, ratingRepo repository.RatingRepository, likeRepo repository.LikeRepository, userRepo repository.UserRepository, search SearchService, redisClient *redis.Client) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		ratingRepo:  ratingRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
		search:      search,
		redisClient: redisClient,
	}
}

func (s *projectService) CreateProject(ctx context.Context, userID uuid.UUID, req dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	// Publish cooldown
	limit := ratelimit.DurationFromEnv("RATE_LIMIT_PROJECT", 30*time.Second)
	allowed, err := ratelimit.CheckAndSet(ctx, s.redisClient, userID, "project", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimit.TTL(ctx, s.redisClient, userID, "project")
		return nil, &ratelimit.RateLimitError{
			Message:    fmt.Sprintf("you can only publish one project every %.0f seconds. Please wait %.0f seconds", limit.Seconds(), ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	project := &model.Project{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		MediaURLs:   req.MediaURLs,
		IsPublic:    isPublic,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		_ = ratelimit.Clear(ctx, s.redisClient, userID, "project")
		return nil, err
	}

	// Load owner for the response and the search document
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err == nil {
		project.User = *user
	}

	s.indexProject(project)

	return s.mapToResponse(project, nil, nil), nil
}

func (s *projectService) GetProject(ctx context.Context, projectID uuid.UUID, viewerID *uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	isOwner := viewerID != nil && *viewerID == project.UserID
	if !project.IsPublic && !isOwner {
		// Private projects are invisible to everyone but their owner.
		return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
	}

	if !isOwner {
		if err := s.projectRepo.IncrementViews(ctx, projectID); err != nil {
			log.Printf("failed to increment views for project %s: %v", projectID, err)
		} else {
			project.Views++
		}
	}

	ratings, err := s.ratingRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var isLiked *bool
	if viewerID != nil {
		liked, err := s.likeRepo.IsProjectLiked(ctx, *viewerID, projectID)
		if err == nil {
			isLiked = &liked
		}
	}

	return s.mapToResponse(project, ratings, isLiked), nil
}

func (s *projectService) GetProjects(ctx context.Context, filter dto.ProjectFilter) ([]dto.ProjectResponse, commonDto.PaginationMeta, error) {
	filter.Normalize()

	repoFilter := repository.ProjectFilter{
		Category: filter.Category,
		Search:   filter.Search,
		SortBy:   filter.SortBy,
	}

	if filter.Username != "" {
		owner, err := s.userRepo.FindByUsername(ctx, filter.Username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, commonDto.PaginationMeta{}, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
			}
			return nil, commonDto.PaginationMeta{}, err
		}
		repoFilter.OwnerID = &owner.ID
	}

	projects, total, err := s.projectRepo.FindAll(ctx, repoFilter, filter.Offset(), filter.Limit)
	if err != nil {
		return nil, commonDto.PaginationMeta{}, err
	}

	responses := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, *s.mapToResponse(p, nil, nil))
	}

	return responses, commonDto.NewPaginationMeta(filter.Page, filter.Limit, total), nil
}

func (s *projectService) UpdateProject(ctx context.Context, userID, projectID uuid.UUID, req dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if project.UserID != userID {
		return nil, fmt.Errorf("%w: you can only update your own project", apperror.ErrForbidden)
	}

	if req.Title != "" {
		project.Title = req.Title
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Category != "" {
		project.Category = req.Category
	}
	if req.MediaURLs != nil {
		project.MediaURLs = req.MediaURLs
	}
	if req.IsPublic != nil {
		project.IsPublic = *req.IsPublic
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	if project.IsPublic {
		s.indexProject(project)
	} else if s.search != nil {
		_ = s.search.DeleteProject(project.ID.String())
	}

	return s.mapToResponse(project, nil, nil), nil
}

func (s *projectService) DeleteProject(ctx context.Context, userID, projectID uuid.UUID) error {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: project not found", apperror.ErrNotFound)
		}
		return err
	}

	// Only the owner may delete a project; admins get no override here.
	if project.UserID != userID {
		return fmt.Errorf("%w: you can only delete your own project", apperror.ErrForbidden)
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	if s.search != nil {
		_ = s.search.DeleteProject(projectID.String())
	}

	return nil
}

func (s *projectService) AddRating(ctx context.Context, projectID, raterID uuid.UUID, req dto.RateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !project.IsPublic {
		return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
	}

	rating := &model.Rating{
		ProjectID: projectID,
		UserID:    raterID,
		Value:     req.Value,
		Comment:   req.Comment,
	}

	// A second rating attempt is rejected, not overwritten.
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: you have already rated this project", apperror.ErrConflict)
		}
		return nil, err
	}

	// Reload for the recomputed aggregates.
	updated, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return s.mapToResponse(updated, ratings, nil), nil
}

func (s *projectService) ToggleLike(ctx context.Context, projectID, userID uuid.UUID) (*dto.LikeStatusResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	if !project.IsPublic && project.UserID != userID {
		return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
	}

	liked, count, err := s.likeRepo.ToggleProjectLike(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeStatusResponse{LikesCount: count, IsLiked: liked}, nil
}

func (s *projectService) GetLikeStatus(ctx context.Context, projectID, userID uuid.UUID) (*dto.LikeStatusResponse, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	liked, err := s.likeRepo.IsProjectLiked(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	return &dto.LikeStatusResponse{LikesCount: project.LikesCount, IsLiked: liked}, nil
}

func (s *projectService) indexProject(project *model.Project) {
	if s.search == nil {
		return
	}
	if err := s.search.IndexProject(project); err != nil {
		log.Printf("failed to index project %s: %v", project.ID, err)
	}
}

func (s *projectService) mapToResponse(project *model.Project, ratings []model.Rating, isLiked *bool) *dto.ProjectResponse {
	resp := &dto.ProjectResponse{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		Category:    project.Category,
		MediaURLs:   project.MediaURLs,
		Author: commonDto.AuthorResponse{
			ID:        project.UserID,
			Username:  project.User.Username,
			AvatarURL: project.User.AvatarURL,
		},
		AverageRating: project.AverageRating,
		TotalRatings:  project.TotalRatings,
		LikesCount:    project.LikesCount,
		Views:         project.Views,
		IsPublic:      project.IsPublic,
		IsLiked:       isLiked,
		CreatedAt:     project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     project.UpdatedAt.Format(time.RFC3339),
	}

	for _, r := range ratings {
		resp.Ratings = append(resp.Ratings, dto.RatingResponse{
			Rater: commonDto.AuthorResponse{
				ID:        r.UserID,
				Username:  r.User.Username,
				AvatarURL: r.User.AvatarURL,
			},
			Value:     r.Value,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}

	return resp
}
