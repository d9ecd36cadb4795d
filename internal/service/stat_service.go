package service

import (
	"context"
	"time"

	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/internal/model"
	"github.com/devporto/backend/internal/repository"
	commonDto "github.com/devporto/backend/pkg/dto"
)

const trendingLimit = 10

type StatService interface {
	GetPlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error)
	GetTrendingProjects(ctx context.Context) ([]dto.ProjectResponse, error)
}

type statService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

func NewStatService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) StatService {
	return &statService{userRepo: userRepo, projectRepo: projectRepo}
}

func (s *statService) GetPlatformStats(ctx context.Context) (*dto.PlatformStatsResponse, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.PlatformStatsResponse{TotalUsers: users, TotalProjects: projects}, nil
}

func (s *statService) GetTrendingProjects(ctx context.Context) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.FindTrending(ctx, trendingLimit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		responses = append(responses, mapTrendingProject(p))
	}
	return responses, nil
}

func mapTrendingProject(project *model.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
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
		CreatedAt:     project.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     project.UpdatedAt.Format(time.RFC3339),
	}
}
