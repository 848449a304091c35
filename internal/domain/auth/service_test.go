package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/user"
	"github.com/forumhub/forum-api/internal/pkg/jwt"
	"github.com/forumhub/forum-api/internal/pkg/password"
)

type fakeUserRepo struct {
	users map[uuid.UUID]*user.User

	lastLoginIP string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*user.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *user.User) error {
	f.users[u.ID] = u
	return nil
}
func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
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
	f.lastLoginIP = ip
	return nil
}
func (f *fakeUserRepo) SetBan(ctx context.Context, id uuid.UUID, kind user.BanKind, reason string, expiresAt *time.Time) error {
	return nil
}
func (f *fakeUserRepo) ClearBan(ctx context.Context, id uuid.UUID) error { return nil }

func newTestService(repo *fakeUserRepo) *Service {
	jwtSvc := jwt.NewService("test-secret", 15*time.Minute, 7*24*time.Hour)
	return NewService(repo, jwtSvc, nil)
}

func registerReq() *RegisterRequest {
	return &RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "correct-horse",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	reg, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.Tokens.AccessToken == "" || reg.Tokens.RefreshToken == "" {
		t.Fatal("registration should issue a token pair")
	}
	if reg.Tokens.TokenType != "Bearer" {
		t.Errorf("token type = %q", reg.Tokens.TokenType)
	}

	res, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "NEW@example.com",
		Password: "correct-horse",
	}, "203.0.113.7")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.ID != reg.User.ID {
		t.Error("login should return the registered user")
	}
	if repo.lastLoginIP != "203.0.113.7" {
		t.Errorf("last login IP = %q", repo.lastLoginIP)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	req := registerReq()
	req.Username = "otheruser"
	if _, err := svc.Register(context.Background(), req); err != ErrEmailAlreadyExists {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("first Register: %v", err)
	}

	req := registerReq()
	req.Email = "other@example.com"
	if _, err := svc.Register(context.Background(), req); err != ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	if _, err := svc.Register(context.Background(), registerReq()); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "new@example.com",
		Password: "wrong",
	}, "")
	if err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginBannedUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	hash, _ := password.Hash("secret123")
	u := &user.User{
		ID:           uuid.New(),
		Username:     "banneduser",
		Email:        "banned@example.com",
		PasswordHash: hash,
		Role:         user.RoleUser,
		IsBanned:     true,
		BanKind:      sql.NullString{String: string(user.BanPermanent), Valid: true},
	}
	repo.users[u.ID] = u

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "banned@example.com",
		Password: "secret123",
	}, "")
	if err != ErrUserBanned {
		t.Fatalf("expected ErrUserBanned, got %v", err)
	}
}

func TestLoginExpiredTemporaryBan(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	hash, _ := password.Hash("secret123")
	u := &user.User{
		ID:           uuid.New(),
		Username:     "parolee",
		Email:        "parolee@example.com",
		PasswordHash: hash,
		Role:         user.RoleUser,
		IsBanned:     true,
		BanKind:      sql.NullString{String: string(user.BanTemporary), Valid: true},
		BanExpiresAt: sql.NullTime{Time: time.Now().Add(-time.Hour), Valid: true},
	}
	repo.users[u.ID] = u

	if _, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "parolee@example.com",
		Password: "secret123",
	}, ""); err != nil {
		t.Fatalf("expired ban should not block login, got %v", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	reg, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	res, err := svc.Refresh(context.Background(), reg.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if res.Tokens.AccessToken == "" || res.Tokens.RefreshToken == "" {
		t.Error("refresh should issue a fresh pair")
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestService(repo)

	reg, err := svc.Register(context.Background(), registerReq())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), reg.Tokens.AccessToken); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRefreshEmptyToken(t *testing.T) {
	svc := newTestService(newFakeUserRepo())

	if _, err := svc.Refresh(context.Background(), ""); err != ErrRefreshTokenRequired {
		t.Fatalf("expected ErrRefreshTokenRequired, got %v", err)
	}
}
