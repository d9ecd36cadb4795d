package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/devporto/backend/internal/config"
	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/internal/model"
	"github.com/devporto/backend/internal/repository"
	"github.com/devporto/backend/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, input dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error)
}

type authService struct {
	repo        repository.UserRepository
	search      SearchService
	secret      string
	tokenTTL    time.Duration
	defaultRole string
}

func NewAuthService(repo repository.UserRepository, search SearchService) AuthService {
	ttl := 24 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_MINUTES"); ttlStr != "" {
		if minutes, err := strconv.Atoi(ttlStr); err == nil {
			ttl = time.Duration(minutes) * time.Minute
		}
	}

	defaultRole := os.Getenv("DEFAULT_ROLE")
	if defaultRole == "" {
		defaultRole = "student"
	}

	return &authService{
		repo:        repo,
		search:      search,
		secret:      config.JWTSecret(),
		tokenTTL:    ttl,
		defaultRole: defaultRole,
	}
}

func (s *authService) Register(ctx context.Context, input dto.RegisterRequest) (*dto.AuthResponse, error) {
	// Emails are unique case-insensitively; normalize before store and lookup.
	email := strings.ToLower(strings.TrimSpace(input.Email))

	role, err := s.repo.FindRoleByName(ctx, s.defaultRole)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default role: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        email,
		PasswordHash: string(hashed),
		RoleID:       &role.ID,
		IsPublic:     true,
	}
	profile := &model.Profile{
		FullName: input.FullName,
	}

	if err := s.repo.Create(ctx, user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: username or email already registered", apperror.ErrConflict)
		}
		return nil, err
	}

	user.Role = *role
	return s.buildAuthResponse(user)
}

func (s *authService) Login(ctx context.Context, input dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) buildAuthResponse(user *model.User) (*dto.AuthResponse, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	// Search tokens are scoped per role; a missing search backend just
	// leaves the field empty.
	searchToken := ""
	if s.search != nil {
		st, err := s.search.GenerateSearchToken(user.Role.Name)
		if err != nil {
			log.Printf("failed to generate search token: %v", err)
		} else {
			searchToken = st
		}
	}

	return &dto.AuthResponse{
		Token:       token,
		SearchToken: searchToken,
		User: dto.UserResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role.Name,
			AvatarURL: user.AvatarURL,
		},
	}, nil
}
