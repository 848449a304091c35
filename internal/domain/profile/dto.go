package profile

import (
	"time"

	"github.com/google/uuid"
)

// UpdateProfileRequest for PATCH /profile
type UpdateProfileRequest struct {
	Bio *string `json:"bio" validate:"omitempty,max=500"`
}

// BanRequest for POST /users/{id}/ban
type BanRequest struct {
	Kind         string `json:"kind" validate:"required,ban_kind"`
	Reason       string `json:"reason" validate:"required,min=3,max=500"`
	DurationDays int    `json:"duration_days" validate:"ban_duration"`
}

// ProfileCounts aggregates activity counters shown on a profile
type ProfileCounts struct {
	Posts     int `json:"posts"`
	Comments  int `json:"comments"`
	Followers int `json:"followers"`
	Following int `json:"following"`
}

// Ban status values. Expiry is observed lazily, so a lapsed temporary
// ban shows up as expired until staff clear the flag.
const (
	BanStatusNone      = "not_banned"
	BanStatusTemporary = "temporary"
	BanStatusPermanent = "permanent"
	BanStatusExpired   = "expired"
)

// BanState describes the current sanction on a profile. Only staff and
// the banned user themselves see it.
type BanState struct {
	Banned    bool       `json:"banned"`
	Status    string     `json:"status"`
	Kind      string     `json:"kind,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	BannedAt  *time.Time `json:"banned_at,omitempty"`
}

// ProfileResponse represents a user profile in API responses
type ProfileResponse struct {
	ID        uuid.UUID     `json:"id"`
	Username  string        `json:"username"`
	Bio       string        `json:"bio,omitempty"`
	AvatarURL string        `json:"avatar_url,omitempty"`
	Role      string        `json:"role"`
	Counts    ProfileCounts `json:"counts"`
	BanState  *BanState     `json:"ban_state,omitempty"`
	CreatedAt string        `json:"created_at"`
}

// AvatarResponse returned after avatar upload
type AvatarResponse struct {
	AvatarURL string `json:"avatar_url"`
}
