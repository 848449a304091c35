package follow

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/user"
)

type pair struct{ follower, followee uuid.UUID }

type fakeRepo struct {
	follows map[pair]bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{follows: map[pair]bool{}}
}

func (f *fakeRepo) Add(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	k := pair{followerID, followeeID}
	if f.follows[k] {
		return false, nil
	}
	f.follows[k] = true
	return true, nil
}
func (f *fakeRepo) Remove(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	k := pair{followerID, followeeID}
	if !f.follows[k] {
		return false, nil
	}
	delete(f.follows, k)
	return true, nil
}
func (f *fakeRepo) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	return f.follows[pair{followerID, followeeID}], nil
}
func (f *fakeRepo) ListFollowers(ctx context.Context, userID uuid.UUID) ([]*FollowerInfo, error) {
	return nil, nil
}
func (f *fakeRepo) ListFollowing(ctx context.Context, userID uuid.UUID) ([]*FollowerInfo, error) {
	return nil, nil
}
func (f *fakeRepo) Counts(ctx context.Context, userID uuid.UUID) (int, int, error) {
	followers := 0
	for k := range f.follows {
		if k.followee == userID {
			followers++
		}
	}
	return followers, 0, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return nil
}
func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) error {
	return nil
}
func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, ip string) error {
	return nil
}
func (f *fakeUserRepo) SetBan(ctx context.Context, id uuid.UUID, kind user.BanKind, reason string, expiresAt *time.Time) error {
	return nil
}
func (f *fakeUserRepo) ClearBan(ctx context.Context, id uuid.UUID) error { return nil }

type fakeNotifier struct {
	calls     int
	recipient uuid.UUID
}

func (f *fakeNotifier) FollowCreated(ctx context.Context, senderID, recipientID uuid.UUID, message string) error {
	f.calls++
	f.recipient = recipientID
	return nil
}

func TestToggleFollowAndUnfollow(t *testing.T) {
	followee := &user.User{ID: uuid.New(), Username: "target"}
	follower := &user.User{ID: uuid.New(), Username: "fan"}
	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{followee.ID: followee, follower.ID: follower}}
	notifier := &fakeNotifier{}

	svc := NewService(newFakeRepo(), users, notifier)

	first, err := svc.Toggle(context.Background(), follower.ID, followee.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !first.Following || first.Followers != 1 {
		t.Errorf("first toggle = %+v", first)
	}
	if notifier.calls != 1 || notifier.recipient != followee.ID {
		t.Error("follow should notify the followee once")
	}

	second, err := svc.Toggle(context.Background(), follower.ID, followee.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if second.Following || second.Followers != 0 {
		t.Errorf("second toggle = %+v", second)
	}
	if notifier.calls != 1 {
		t.Error("unfollow must not notify")
	}
}

func TestToggleSelfRejected(t *testing.T) {
	id := uuid.New()
	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{id: {ID: id}}}

	svc := NewService(newFakeRepo(), users, &fakeNotifier{})

	if _, err := svc.Toggle(context.Background(), id, id); err != ErrCannotFollowSelf {
		t.Fatalf("expected ErrCannotFollowSelf, got %v", err)
	}
}

func TestToggleUnknownUser(t *testing.T) {
	users := &fakeUserRepo{users: map[uuid.UUID]*user.User{}}

	svc := NewService(newFakeRepo(), users, &fakeNotifier{})

	if _, err := svc.Toggle(context.Background(), uuid.New(), uuid.New()); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
