package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role represents user role in the system (matches user_role enum)
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// BanKind distinguishes temporary bans from permanent ones
type BanKind string

const (
	BanTemporary BanKind = "temporary"
	BanPermanent BanKind = "permanent"
)

// User represents a user account (matches users table)
type User struct {
	ID           uuid.UUID `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`

	// Profile
	Bio       sql.NullString `db:"bio"`
	AvatarURL sql.NullString `db:"avatar_url"`

	// Ban state
	IsBanned     bool           `db:"is_banned"`
	BanKind      sql.NullString `db:"ban_kind"`
	BanReason    sql.NullString `db:"ban_reason"`
	BanExpiresAt sql.NullTime   `db:"ban_expires_at"`
	BannedAt     sql.NullTime   `db:"banned_at"`

	// Login tracking
	LastLoginAt sql.NullTime   `db:"last_login_at"`
	LastLoginIP sql.NullString `db:"last_login_ip"`

	// Timestamps
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsStaff returns true if user can moderate content
func (u *User) IsStaff() bool {
	return u.Role == RoleModerator || u.Role == RoleAdmin
}

// IsAdmin returns true if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EffectivelyBanned reports whether the ban is in force at the given
// time. Expired temporary bans stop blocking without being cleared, so
// is_banned alone is not authoritative.
func (u *User) EffectivelyBanned(now time.Time) bool {
	if !u.IsBanned {
		return false
	}
	if !u.BanExpiresAt.Valid {
		return true // permanent
	}
	return now.Before(u.BanExpiresAt.Time)
}

// BanDurations lists the allowed temporary ban lengths in days
func BanDurations() []int {
	return []int{1, 3, 7, 30, 90}
}

// IsValidBanDuration checks whether days is an allowed ban length
func IsValidBanDuration(days int) bool {
	for _, d := range BanDurations() {
		if d == days {
			return true
		}
	}
	return false
}
