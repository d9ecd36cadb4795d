package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/devporto/backend/internal/model"
	"github.com/devporto/backend/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. They mirror the contracts the SQL
// implementations provide, including duplicate-key errors from unique
// indexes and aggregate recomputation on mutating writes.

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
	roles map[string]*model.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[uuid.UUID]*model.User),
		roles: map[string]*model.Role{
			"admin":   {ID: 1, Name: "admin"},
			"student": {ID: 2, Name: "student"},
		},
	}
}

func (f *fakeUserRepo) add(user *model.User) *model.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role.Name == "" {
		user.Role = *f.roles["student"]
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User, profile *model.Profile) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	profile.UserID = user.ID
	user.Profile = profile
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	user, ok := f.users[uid]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindRoleByName(ctx context.Context, name string) (*model.Role, error) {
	role, ok := f.roles[name]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return role, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User, profile *model.Profile) error {
	user.Profile = profile
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	users := make([]*model.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, uid)
	return nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type fakeProjectRepo struct {
	projects map[uuid.UUID]*model.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[uuid.UUID]*model.Project)}
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *model.Project) error {
	if project.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		project.ID = id
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	f.projects[project.ID] = project
	return nil
}

func (f *fakeProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *project
	return &copied, nil
}

func (f *fakeProjectRepo) FindAll(ctx context.Context, filter repository.ProjectFilter, offset, limit int) ([]*model.Project, int64, error) {
	var matched []*model.Project
	for _, p := range f.projects {
		if !p.IsPublic {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.OwnerID != nil && p.UserID != *filter.OwnerID {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool {
		if filter.SortBy == "popular" {
			return matched[i].LikesCount > matched[j].LikesCount
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, project *model.Project) error {
	if _, ok := f.projects[project.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	project.UpdatedAt = time.Now()
	copied := *project
	f.projects[project.ID] = &copied
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	project, ok := f.projects[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	project.Views++
	return nil
}

func (f *fakeProjectRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(f.projects)), nil
}

func (f *fakeProjectRepo) FindTrending(ctx context.Context, limit int) ([]*model.Project, error) {
	projects, _, err := f.FindAll(ctx, repository.ProjectFilter{SortBy: "popular"}, 0, limit)
	return projects, err
}

type fakeRatingRepo struct {
	projects *fakeProjectRepo
	ratings  []model.Rating
	nextID   uint
}

func newFakeRatingRepo(projects *fakeProjectRepo) *fakeRatingRepo {
	return &fakeRatingRepo{projects: projects, nextID: 1}
}

func (f *fakeRatingRepo) Create(ctx context.Context, rating *model.Rating) error {
	for _, r := range f.ratings {
		if r.ProjectID == rating.ProjectID && r.UserID == rating.UserID {
			return gorm.ErrDuplicatedKey
		}
	}

	rating.ID = f.nextID
	f.nextID++
	rating.CreatedAt = time.Now()
	f.ratings = append(f.ratings, *rating)

	// Recompute the project aggregates from the rows.
	var sum, count int64
	for _, r := range f.ratings {
		if r.ProjectID == rating.ProjectID {
			sum += int64(r.Value)
			count++
		}
	}
	project, ok := f.projects.projects[rating.ProjectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	project.AverageRating = math.Round(float64(sum)/float64(count)*10) / 10
	project.TotalRatings = count
	return nil
}

func (f *fakeRatingRepo) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]model.Rating, error) {
	var out []model.Rating
	for _, r := range f.ratings {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type likeKey struct {
	userID   uuid.UUID
	entityID uuid.UUID
}

type fakeLikeRepo struct {
	projects     *fakeProjectRepo
	comments     *fakeCommentRepo
	projectLikes map[likeKey]bool
	commentLikes map[likeKey]bool
}

func newFakeLikeRepo(projects *fakeProjectRepo, comments *fakeCommentRepo) *fakeLikeRepo {
	return &fakeLikeRepo{
		projects:     projects,
		comments:     comments,
		projectLikes: make(map[likeKey]bool),
		commentLikes: make(map[likeKey]bool),
	}
}

func (f *fakeLikeRepo) ToggleProjectLike(ctx context.Context, userID, projectID uuid.UUID) (bool, int64, error) {
	key := likeKey{userID, projectID}
	liked := !f.projectLikes[key]
	if liked {
		f.projectLikes[key] = true
	} else {
		delete(f.projectLikes, key)
	}

	var count int64
	for k := range f.projectLikes {
		if k.entityID == projectID {
			count++
		}
	}
	if project, ok := f.projects.projects[projectID]; ok {
		project.LikesCount = count
	}
	return liked, count, nil
}

func (f *fakeLikeRepo) ToggleCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, int64, error) {
	key := likeKey{userID, commentID}
	liked := !f.commentLikes[key]
	if liked {
		f.commentLikes[key] = true
	} else {
		delete(f.commentLikes, key)
	}

	var count int64
	for k := range f.commentLikes {
		if k.entityID == commentID {
			count++
		}
	}
	if comment, ok := f.comments.comments[commentID]; ok {
		comment.LikesCount = count
	}
	return liked, count, nil
}

func (f *fakeLikeRepo) IsProjectLiked(ctx context.Context, userID, projectID uuid.UUID) (bool, error) {
	return f.projectLikes[likeKey{userID, projectID}], nil
}

func (f *fakeLikeRepo) IsCommentLiked(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	return f.commentLikes[likeKey{userID, commentID}], nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*model.Comment
	seq      int
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[uuid.UUID]*model.Comment)}
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	if comment.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		comment.ID = id
	}
	// Monotonic timestamps so ordering is deterministic.
	f.seq++
	comment.CreatedAt = time.Unix(int64(f.seq), 0)
	comment.UpdatedAt = comment.CreatedAt
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment, nil
}

func (f *fakeCommentRepo) FindTopLevel(ctx context.Context, projectID uuid.UUID, offset, limit int) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range f.comments {
		if c.ProjectID == projectID && c.ParentID == nil {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeCommentRepo) CountTopLevel(ctx context.Context, projectID uuid.UUID) (int64, error) {
	var count int64
	for _, c := range f.comments {
		if c.ProjectID == projectID && c.ParentID == nil {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) FindReplies(ctx context.Context, parentIDs []uuid.UUID) ([]*model.Comment, error) {
	wanted := make(map[uuid.UUID]bool, len(parentIDs))
	for _, id := range parentIDs {
		wanted[id] = true
	}
	var out []*model.Comment
	for _, c := range f.comments {
		if c.ParentID != nil && wanted[*c.ParentID] {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, comment *model.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) DeleteWithReplies(ctx context.Context, id uuid.UUID) error {
	for cid, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(f.comments, cid)
		}
	}
	delete(f.comments, id)
	return nil
}

type followKey struct {
	followerID  uuid.UUID
	followingID uuid.UUID
}

type fakeFollowRepo struct {
	users   *fakeUserRepo
	follows map[followKey]time.Time
	seq     int
}

func newFakeFollowRepo(users *fakeUserRepo) *fakeFollowRepo {
	return &fakeFollowRepo{users: users, follows: make(map[followKey]time.Time)}
}

func (f *fakeFollowRepo) Create(ctx context.Context, follow *model.Follow) error {
	key := followKey{follow.FollowerID, follow.FollowingID}
	if _, exists := f.follows[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	f.seq++
	f.follows[key] = time.Unix(int64(f.seq), 0)
	return nil
}

func (f *fakeFollowRepo) Delete(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	key := followKey{followerID, followingID}
	if _, exists := f.follows[key]; !exists {
		return false, nil
	}
	delete(f.follows, key)
	return true, nil
}

func (f *fakeFollowRepo) Exists(ctx context.Context, followerID, followingID uuid.UUID) (bool, error) {
	_, exists := f.follows[followKey{followerID, followingID}]
	return exists, nil
}

func (f *fakeFollowRepo) FindFollowers(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*model.Follow, int64, error) {
	var out []*model.Follow
	for key, at := range f.follows {
		if key.followingID != userID {
			continue
		}
		follow := &model.Follow{FollowerID: key.followerID, FollowingID: key.followingID, CreatedAt: at}
		if u, ok := f.users.users[key.followerID]; ok {
			follow.Follower = *u
		}
		out = append(out, follow)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, offset, limit), int64(len(out)), nil
}

func (f *fakeFollowRepo) FindFollowing(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*model.Follow, int64, error) {
	var out []*model.Follow
	for key, at := range f.follows {
		if key.followerID != userID {
			continue
		}
		follow := &model.Follow{FollowerID: key.followerID, FollowingID: key.followingID, CreatedAt: at}
		if u, ok := f.users.users[key.followingID]; ok {
			follow.Following = *u
		}
		out = append(out, follow)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, offset, limit), int64(len(out)), nil
}

func page(follows []*model.Follow, offset, limit int) []*model.Follow {
	if offset >= len(follows) {
		return nil
	}
	end := offset + limit
	if end > len(follows) {
		end = len(follows)
	}
	return follows[offset:end]
}

type fakeNotificationRepo struct {
	notifications []*model.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) Create(ctx context.Context, notification *model.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	notification.CreatedAt = time.Now()
	f.notifications = append(f.notifications, notification)
	return nil
}

func (f *fakeNotificationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]model.Notification, int64, error) {
	var out []model.Notification
	for i := len(f.notifications) - 1; i >= 0; i-- {
		if f.notifications[i].UserID == userID {
			out = append(out, *f.notifications[i])
		}
	}
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], total, nil
}

func (f *fakeNotificationRepo) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	for _, n := range f.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	for _, n := range f.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for i, n := range f.notifications {
		if n.ID == id {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeNotificationRepo) DeleteAllByUserID(ctx context.Context, userID uuid.UUID) error {
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.UserID != userID {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}
