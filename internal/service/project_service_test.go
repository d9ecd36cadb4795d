package service

import (
	"context"
	"errors"
	"testing"

	"github.com/devporto/backend/internal/dto"
	"github.com/devporto/backend/internal/model"
	"github.com/devporto/backend/pkg/apperror"
	"github.com/google/uuid"
)

type projectFixture struct {
	users    *fakeUserRepo
	projects *fakeProjectRepo
	svc      ProjectService
}

func newProjectFixture() *projectFixture {
	users := newFakeUserRepo()
	projects := newFakeProjectRepo()
	ratings := newFakeRatingRepo(projects)
	likes := newFakeLikeRepo(projects, newFakeCommentRepo())
	return &projectFixture{
		users:    users,
		projects: projects,
		svc:      NewProjectService(projects, ratings, likes, users, nil, nil),
	}
}

func (fx *projectFixture) seedUser(t *testing.T, username string) *model.User {
	t.Helper()
	return fx.users.add(&model.User{Username: username, Email: username + "@example.com"})
}

func (fx *projectFixture) seedProject(t *testing.T, owner *model.User, public bool) *model.Project {
	t.Helper()
	project := &model.Project{
		UserID:      owner.ID,
		User:        *owner,
		Title:       "Portfolio Site",
		Description: "A personal site",
		Category:    model.CategoryWeb,
		IsPublic:    public,
	}
	if err := fx.projects.Create(context.Background(), project); err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return project
}

func TestAddRatingUpdatesAggregates(t *testing.T) {
	fx := newProjectFixture()
	owner := fx.seedUser(t, "owner")
	alice := fx.seedUser(t, "alice")
	bob := fx.seedUser(t, "bob")
	project := fx.seedProject(t, owner, true)

	ctx := context.Background()
	if _, err := fx.svc.AddRating(ctx, project.ID, alice.ID, dto.RateProjectRequest{Value: 4}); err != nil {
		t.Fatalf("first rating: %v", err)
	}
	resp, err := fx.svc.AddRating(ctx, project.ID, bob.ID, dto.RateProjectRequest{Value: 5, Comment: "great work"})
	if err != nil {
		t.Fatalf("second rating: %v", err)
	}

	if resp.AverageRating != 4.5 {
		t.Errorf("average = %v, want 4.5", resp.AverageRating)
	}
	if resp.TotalRatings != 2 {
		t.Errorf("total = %d, want 2", resp.TotalRatings)
	}
	if len(resp.Ratings) != 2 {
		t.Errorf("ratings in response = %d, want 2", len(resp.Ratings))
	}
}

func TestAddRatingDuplicateRejected(t *testing.T) {
	fx := newProjectFixture()
	owner := fx.seedUser(t, "owner")
	alice := fx.seedUser(t, "alice")
	project := fx.seedProject(t, owner, true)

	ctx := context.Background()
	if _, err := fx.svc.AddRating(ctx, project.ID, alice.ID, dto.RateProjectRequest{Value: 3}); err != nil {
		t.Fatalf("first rating: %v", err)
	}
	_, err := fx.svc.AddRating(ctx, project.ID, alice.ID, dto.RateProjectRequest{Value: 5})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}

	// The rejected attempt must not move the aggregates.
	got, err := fx.svc.GetProject(ctx, project.ID, &owner.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got.AverageRating != 3 || got.TotalRatings != 1 {
		t.Errorf("aggregates = (%v, %d), want (3, 1)", got.AverageRating, got.TotalRatings)
	}
}

func TestAddRatingMissingProject(t *testing.T) {
	fx := newProjectFixture()
	alice := fx.seedUser(t, "alice")

	_, err := fx.svc.AddRating(context.Background(), uuid.New(), alice.ID, dto.RateProjectRequest{Value: 4})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestToggleLikeIsSelfInverse(t *testing.T) {
	fx := newProjectFixture()
	owner := fx.seedUser(t, "owner")
	alice := fx.seedUser(t, "alice")
	project := fx.seedProject(t, owner, true)

	ctx := context.Background()
	status, err := fx.svc.ToggleLike(ctx, project.ID, alice.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !status.IsLiked || status.LikesCount != 1 {
		t.Fatalf("after like: liked=%v count=%d, want true/1", status.IsLiked, status.LikesCount)
	}

	status, err = fx.svc.ToggleLike(ctx, project.ID, alice.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if status.IsLiked || status.LikesCount != 0 {
		t.Fatalf("after unlike: liked=%v count=%d, want false/0", status.IsLiked, status.LikesCount)
	}
}

func TestGetLikeStatusDoesNotMutate(t *testing.T) {
	fx := newProjectFixture()
	owner := fx.seedUser(t, "owner")
	alice := fx.seedUser(t, "alice")
	project := fx.seedProject(t, owner, true)

	ctx := context.Background()
	if _, err := fx.svc.ToggleLike(ctx, project.ID, alice.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	for i := 0; i < 3; i++ {
		status, err := fx.svc.GetLikeStatus(ctx, project.ID, alice.ID)
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if !status.IsLiked || status.LikesCount != 1 {
			t.Fatalf("status read mutated state: liked=%v count=%d", status.IsLiked, status.LikesCount)
		}
	}
}

func TestGetProjectPrivateHiddenFromOthers(t *testing.T) {
	fx := newProjectFixture()
	owner := fx.seedUser(t, "owner")
	alice := fx.seedUser(t, "alice")
	project := fx.seedProject(t, owner, false)

	ctx := context.Background()
	if _, err := fx.svc.GetProject(ctx, project.ID, &alice.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("viewer err = %v, want not found", err)
	}
	if _, err := fx.svc.GetProject(ctx, project.ID, nil); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("anonymous err = %v, want not found", err)
	}
	if _, err := fx.svc.GetProject(ctx, project.ID, &owner.ID); err != nil {
		t.Fatalf("owner err = %v, want nil", err)
	}
}

func TestGetProjectCountsViewsForNonOwners(t *testing.T) {
	fx := newProjectFixture()
	owner := fx.seedUser(t, "owner")
	alice := fx.seedUser(t, "alice")
	project := fx.seedProject(t, owner, true)

	ctx := context.Background()
	if _, err := fx.svc.GetProject(ctx, project.ID, &owner.ID); err != nil {
		t.Fatalf("owner view: %v", err)
	}
	got, err := fx.svc.GetProject(ctx, project.ID, &alice.ID)
	if err != nil {
		t.Fatalf("visitor view: %v", err)
	}
	if got.Views != 1 {
		t.Errorf("views = %d, want 1 (owner views not counted)", got.Views)
	}
}

func TestUpdateProjectForbiddenForNonOwner(t *testing.T) {
	fx := newProjectFixture()
	owner := fx.seedUser(t, "owner")
	alice := fx.seedUser(t, "alice")
	project := fx.seedProject(t, owner, true)

	_, err := fx.svc.UpdateProject(context.Background(), alice.ID, project.ID, dto.UpdateProjectRequest{Title: "hijacked"})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestDeleteProjectOwnerOnly(t *testing.T) {
	fx := newProjectFixture()
	owner := fx.seedUser(t, "owner")
	admin := fx.users.add(&model.User{Username: "root", Email: "root@example.com", Role: model.Role{ID: 1, Name: "admin"}})
	project := fx.seedProject(t, owner, true)

	ctx := context.Background()
	if err := fx.svc.DeleteProject(ctx, admin.ID, project.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("admin delete = %v, want forbidden", err)
	}
	if _, err := fx.svc.GetProject(ctx, project.ID, &owner.ID); err != nil {
		t.Fatalf("project gone after rejected delete: %v", err)
	}

	if err := fx.svc.DeleteProject(ctx, owner.ID, project.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := fx.svc.GetProject(ctx, project.ID, &owner.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("project still visible after delete: %v", err)
	}
}

func TestGetProjectsFiltersPrivate(t *testing.T) {
	fx := newProjectFixture()
	owner := fx.seedUser(t, "owner")
	fx.seedProject(t, owner, true)
	fx.seedProject(t, owner, false)

	projects, meta, err := fx.svc.GetProjects(context.Background(), dto.ProjectFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 || meta.Total != 1 {
		t.Errorf("listed %d (total %d), want 1 public project", len(projects), meta.Total)
	}
}
