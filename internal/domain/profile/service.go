package profile

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/domain/user"
	"github.com/forumhub/forum-api/internal/pkg/imaging"
	"github.com/forumhub/forum-api/internal/pkg/storage"
)

// Counters provides the activity numbers shown on a profile
type Counters interface {
	ProfileCounts(ctx context.Context, userID uuid.UUID) (*ProfileCounts, error)
}

// Notifier delivers moderation notices to users
type Notifier interface {
	Moderation(ctx context.Context, senderID, recipientID uuid.UUID, message string) error
}

// Service handles profile and sanction business logic
type Service struct {
	userRepo  user.Repository
	counters  Counters
	notifier  Notifier
	store     storage.Storage
	processor *imaging.Processor
}

// NewService creates profile service
func NewService(userRepo user.Repository, counters Counters, notifier Notifier, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{
		userRepo:  userRepo,
		counters:  counters,
		notifier:  notifier,
		store:     store,
		processor: processor,
	}
}

// GetProfile returns a user's public profile. Ban state is included
// only for staff viewers and the profile owner.
func (s *Service) GetProfile(ctx context.Context, targetID, viewerID uuid.UUID, viewerIsStaff bool) (*ProfileResponse, error) {
	u, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrProfileNotFound
	}

	counts := ProfileCounts{}
	if s.counters != nil {
		if c, err := s.counters.ProfileCounts(ctx, targetID); err == nil && c != nil {
			counts = *c
		}
	}

	resp := &ProfileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Bio:       u.Bio.String,
		AvatarURL: u.AvatarURL.String,
		Role:      string(u.Role),
		Counts:    counts,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}

	if viewerIsStaff || viewerID == targetID {
		resp.BanState = banState(u, time.Now())
	}

	return resp, nil
}

// UpdateProfile updates mutable profile fields
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*ProfileResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrProfileNotFound
	}

	if req.Bio != nil {
		u.Bio.String = *req.Bio
		u.Bio.Valid = *req.Bio != ""
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID, userID, false)
}

// UploadAvatar validates, resizes and stores a new avatar image
func (s *Service) UploadAvatar(ctx context.Context, userID uuid.UUID, file io.Reader) (*AvatarResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrProfileNotFound
	}

	data, _, err := storage.ValidateFile(file, "avatar", 5<<20)
	if err != nil {
		return nil, ErrInvalidAvatar
	}

	processed, contentType, err := s.processor.Process(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidAvatar
	}

	ext := "jpg"
	if contentType == "image/png" {
		ext = "png"
	}
	key := fmt.Sprintf("avatars/%s/%s.%s", userID, uuid.New(), ext)

	if err := s.store.Put(ctx, key, bytes.NewReader(processed), contentType); err != nil {
		return nil, err
	}

	// Old avatar is best-effort cleanup
	if u.AvatarURL.Valid {
		if oldKey, ok := keyFromURL(u.AvatarURL.String, s.store); ok {
			_ = s.store.Delete(ctx, oldKey)
		}
	}

	url := s.store.GetURL(key)
	if err := s.userRepo.UpdateAvatar(ctx, userID, url); err != nil {
		return nil, err
	}

	return &AvatarResponse{AvatarURL: url}, nil
}

// Ban sanctions a user. Temporary bans require one of the allowed
// durations; permanent bans ignore duration. The target is notified
// with the stated reason.
func (s *Service) Ban(ctx context.Context, actorID, targetID uuid.UUID, req *BanRequest) error {
	if actorID == targetID {
		return ErrCannotBanSelf
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrProfileNotFound
	}
	if target.IsStaff() {
		return ErrCannotBanStaff
	}

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ErrBanReasonRequired
	}

	var kind user.BanKind
	var expiresAt *time.Time
	switch user.BanKind(req.Kind) {
	case user.BanTemporary:
		if !user.IsValidBanDuration(req.DurationDays) {
			return ErrInvalidBanDuration
		}
		t := time.Now().AddDate(0, 0, req.DurationDays)
		expiresAt = &t
		kind = user.BanTemporary
	case user.BanPermanent:
		kind = user.BanPermanent
	default:
		return ErrInvalidBanKind
	}

	if err := s.userRepo.SetBan(ctx, targetID, kind, reason, expiresAt); err != nil {
		return err
	}

	s.notify(ctx, actorID, targetID, banMessage(kind, reason, req.DurationDays))
	return nil
}

// Unban lifts a sanction. Calling it on a user who isn't banned is not
// an error; the notice is sent either way.
func (s *Service) Unban(ctx context.Context, actorID, targetID uuid.UUID) error {
	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrProfileNotFound
	}

	if err := s.userRepo.ClearBan(ctx, targetID); err != nil {
		return err
	}

	s.notify(ctx, actorID, targetID, "Your account ban has been lifted.")
	return nil
}

// GetBanState returns the sanction details for a user
func (s *Service) GetBanState(ctx context.Context, targetID uuid.UUID) (*BanState, error) {
	u, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrProfileNotFound
	}
	return banState(u, time.Now()), nil
}

// IsBanned reports whether a user is currently sanctioned. Implements
// middleware.BanChecker.
func (s *Service) IsBanned(ctx context.Context, userID uuid.UUID) (bool, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}
	return u.EffectivelyBanned(time.Now()), nil
}

func (s *Service) notify(ctx context.Context, senderID, recipientID uuid.UUID, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Moderation(ctx, senderID, recipientID, message); err != nil {
		log.Warn().Err(err).
			Str("recipient_id", recipientID.String()).
			Msg("failed to deliver moderation notice")
	}
}

func banState(u *user.User, now time.Time) *BanState {
	state := &BanState{Banned: u.EffectivelyBanned(now)}
	if !u.IsBanned {
		state.Status = BanStatusNone
		return state
	}

	state.Kind = u.BanKind.String
	state.Reason = u.BanReason.String
	if u.BanExpiresAt.Valid {
		t := u.BanExpiresAt.Time
		state.ExpiresAt = &t
	}
	if u.BannedAt.Valid {
		t := u.BannedAt.Time
		state.BannedAt = &t
	}

	switch {
	case !state.Banned:
		state.Status = BanStatusExpired
	case user.BanKind(u.BanKind.String) == user.BanPermanent:
		state.Status = BanStatusPermanent
	default:
		state.Status = BanStatusTemporary
	}
	return state
}

func banMessage(kind user.BanKind, reason string, days int) string {
	if kind == user.BanPermanent {
		return fmt.Sprintf("Your account has been permanently banned. Reason: %s", reason)
	}
	return fmt.Sprintf("Your account has been banned for %d days. Reason: %s", days, reason)
}

func keyFromURL(url string, store storage.Storage) (string, bool) {
	base := store.GetURL("")
	if base != "" && strings.HasPrefix(url, base) {
		return strings.TrimPrefix(url, base), true
	}
	return "", false
}
