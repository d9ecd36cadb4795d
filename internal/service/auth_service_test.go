package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/pkg/apperror"
)

func registerReq(username string) dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: username,
		Email:    username + "@Example.COM",
		Password: "correct-horse",
		FullName: "Test User",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, nil)

	ctx := context.Background()
	auth, err := svc.Register(ctx, registerReq("alice"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if auth.Token == "" {
		t.Error("register returned empty token")
	}
	if auth.User.Email != "alice@example.com" {
		t.Errorf("email = %q, want lowercased", auth.User.Email)
	}
	if auth.User.Role != "student" {
		t.Errorf("role = %q, want student", auth.User.Role)
	}

	// Login matches case-insensitively on email.
	logged, err := svc.Login(ctx, dto.LoginRequest{Email: "ALICE@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.User.ID != auth.User.ID {
		t.Error("login resolved a different user")
	}
}

func TestRegisterDuplicateConflict(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, nil)

	ctx := context.Background()
	if _, err := svc.Register(ctx, registerReq("alice")); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, registerReq("alice"))
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, nil)

	ctx := context.Background()
	if _, err := svc.Register(ctx, registerReq("alice")); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("wrong password err = %v, want unauthorized", err)
	}

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("unknown user err = %v, want unauthorized", err)
	}
}
