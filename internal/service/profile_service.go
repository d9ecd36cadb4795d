package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/internal/model"
	"github.com/devporto/backend/internal/repository"
	"github.com/devporto/backend/pkg/apperror"
	"github.com/devporto/backend/pkg/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfileByUsername(ctx context.Context, username string, viewerID *uuid.UUID) (*dto.ProfileResponse, error)
	GetOwnProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*dto.ProfileResponse, error)
}

type profileService struct {
	userRepo repository.UserRepository
	storage  storage.MediaStorage
}

func NewProfileService(userRepo repository.UserRepository, storage storage.MediaStorage) ProfileService {
	return &profileService{userRepo: userRepo, storage: storage}
}

func (s *profileService) GetProfileByUsername(ctx context.Context, username string, viewerID *uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	// Private profiles resolve as not found for everyone but the owner.
	if !user.IsPublic && (viewerID == nil || *viewerID != user.ID) {
		return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
	}

	return mapProfileResponse(user), nil
}

func (s *profileService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}
	return mapProfileResponse(user), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	profile := user.Profile
	if profile == nil {
		profile = &model.Profile{UserID: user.ID}
	}

	if req.FullName != "" {
		profile.FullName = req.FullName
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.Skills != nil {
		profile.Skills = req.Skills
	}
	if req.Certifications != nil {
		profile.Certifications = req.Certifications
	}
	if req.GithubURL != nil {
		profile.GithubURL = req.GithubURL
	}
	if req.LinkedinURL != nil {
		profile.LinkedinURL = req.LinkedinURL
	}
	if req.WebsiteURL != nil {
		profile.WebsiteURL = req.WebsiteURL
	}
	if req.IsPublic != nil {
		user.IsPublic = *req.IsPublic
	}

	user.Profile = profile
	if err := s.userRepo.Update(ctx, user, profile); err != nil {
		return nil, err
	}

	return mapProfileResponse(user), nil
}

func (s *profileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, file *multipart.FileHeader) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: could not read uploaded file", apperror.ErrInvalidInput)
	}
	defer src.Close()

	url, err := s.storage.UploadMedia(ctx, src, "avatars", file.Filename)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar: %w", err)
	}

	old := user.AvatarURL
	user.AvatarURL = &url
	if err := s.userRepo.Update(ctx, user, user.Profile); err != nil {
		return nil, err
	}

	if old != nil && *old != "" {
		// Best effort, the new avatar is already live.
		_ = s.storage.DeleteMedia(ctx, *old)
	}

	return mapProfileResponse(user), nil
}

func mapProfileResponse(user *model.User) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL,
		IsPublic:  user.IsPublic,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
	if user.Profile != nil {
		resp.FullName = user.Profile.FullName
		resp.Bio = user.Profile.Bio
		resp.Skills = user.Profile.Skills
		resp.Certifications = user.Profile.Certifications
		resp.GithubURL = user.Profile.GithubURL
		resp.LinkedinURL = user.Profile.LinkedinURL
		resp.WebsiteURL = user.Profile.WebsiteURL
	}
	return resp
}
