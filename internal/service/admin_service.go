package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/internal/repository"
	"github.com/devporto/backend/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminService interface {
	ListUsers(ctx context.Context) ([]dto.UserResponse, error)
	DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error
}

type adminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) ListUsers(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, dto.UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role.Name,
			AvatarURL: u.AvatarURL,
		})
	}
	return responses, nil
}

func (s *adminService) DeleteUser(ctx context.Context, adminID, userID uuid.UUID) error {
	if adminID == userID {
		return fmt.Errorf("%w: you cannot delete your own account here", apperror.ErrInvalidInput)
	}

	if _, err := s.userRepo.FindByID(ctx, userID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user not found", apperror.ErrNotFound)
		}
		return err
	}

	return s.userRepo.Delete(ctx, userID.String())
}
