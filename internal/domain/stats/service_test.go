package stats

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/comment"
	"github.com/forumhub/forum-api/internal/domain/follow"
	"github.com/forumhub/forum-api/internal/domain/post"
	"github.com/forumhub/forum-api/internal/pkg/cache"
)

type fakeRepo struct {
	overview Overview
	calls    int
}

func (f *fakeRepo) Overview(ctx context.Context) (*Overview, error) {
	f.calls++
	o := f.overview
	return &o, nil
}

type fakePostRepo struct {
	byAuthor map[uuid.UUID]int
}

func (f *fakePostRepo) Create(ctx context.Context, p *post.Post) error { return nil }
func (f *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return nil, nil
}
func (f *fakePostRepo) Update(ctx context.Context, p *post.Post) error     { return nil }
func (f *fakePostRepo) HardDelete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakePostRepo) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	return nil
}
func (f *fakePostRepo) List(ctx context.Context, filter *post.ListFilter) ([]*post.Post, int, error) {
	return nil, 0, nil
}
func (f *fakePostRepo) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error { return nil }
func (f *fakePostRepo) AddViews(ctx context.Context, id uuid.UUID, count int64) error  { return nil }
func (f *fakePostRepo) AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}
func (f *fakePostRepo) AdjustCommentsCount(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}
func (f *fakePostRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return f.byAuthor[authorID], nil
}

type fakeCommentRepo struct {
	byAuthor map[uuid.UUID]int
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *comment.Comment) error { return nil }
func (f *fakeCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	return nil, nil
}
func (f *fakeCommentRepo) Update(ctx context.Context, c *comment.Comment) error { return nil }
func (f *fakeCommentRepo) HardDelete(ctx context.Context, id uuid.UUID) error   { return nil }
func (f *fakeCommentRepo) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	return nil
}
func (f *fakeCommentRepo) ListByPost(ctx context.Context, postID uuid.UUID, includeInactive bool) ([]*comment.Comment, error) {
	return nil, nil
}
func (f *fakeCommentRepo) AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}
func (f *fakeCommentRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return f.byAuthor[authorID], nil
}
func (f *fakeCommentRepo) CountThread(ctx context.Context, id uuid.UUID) (int, error) {
	return 1, nil
}

type followCounts struct{ followers, following int }

type fakeFollowRepo struct {
	counts map[uuid.UUID]followCounts
}

func (f *fakeFollowRepo) Add(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeFollowRepo) Remove(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeFollowRepo) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return false, nil
}
func (f *fakeFollowRepo) ListFollowers(ctx context.Context, userID uuid.UUID) ([]*follow.FollowerInfo, error) {
	return nil, nil
}
func (f *fakeFollowRepo) ListFollowing(ctx context.Context, userID uuid.UUID) ([]*follow.FollowerInfo, error) {
	return nil, nil
}
func (f *fakeFollowRepo) Counts(ctx context.Context, userID uuid.UUID) (int, int, error) {
	c := f.counts[userID]
	return c.followers, c.following, nil
}

func TestProfileCountsAggregates(t *testing.T) {
	userID := uuid.New()
	svc := NewService(
		&fakeRepo{},
		&fakePostRepo{byAuthor: map[uuid.UUID]int{userID: 4}},
		&fakeCommentRepo{byAuthor: map[uuid.UUID]int{userID: 9}},
		&fakeFollowRepo{counts: map[uuid.UUID]followCounts{userID: {followers: 3, following: 2}}},
		cache.NewStore(nil),
	)

	counts, err := svc.ProfileCounts(context.Background(), userID)
	if err != nil {
		t.Fatalf("ProfileCounts: %v", err)
	}
	if counts.Posts != 4 || counts.Comments != 9 || counts.Followers != 3 || counts.Following != 2 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestOverviewReturnsRepoNumbers(t *testing.T) {
	repo := &fakeRepo{overview: Overview{
		Users:       120,
		ActiveUsers: 17,
		Posts:       300,
		OpenReports: 5,
	}}
	svc := NewService(repo, &fakePostRepo{}, &fakeCommentRepo{}, &fakeFollowRepo{}, cache.NewStore(nil))

	o, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if o.Users != 120 || o.ActiveUsers != 17 || o.Posts != 300 || o.OpenReports != 5 {
		t.Errorf("overview = %+v", o)
	}

	// Without Redis the store degrades to recomputing on every call
	if _, err := svc.Overview(context.Background()); err != nil {
		t.Fatalf("second Overview: %v", err)
	}
	if repo.calls != 2 {
		t.Errorf("repo calls = %d, want 2", repo.calls)
	}
}
