package profile

import "errors"

var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCannotBanSelf      = errors.New("cannot ban yourself")
	ErrCannotBanStaff     = errors.New("cannot ban staff members")
	ErrInvalidBanKind     = errors.New("invalid ban kind")
	ErrInvalidBanDuration = errors.New("invalid ban duration")
	ErrBanReasonRequired  = errors.New("ban reason required")
	ErrInvalidAvatar      = errors.New("invalid avatar image")
)
