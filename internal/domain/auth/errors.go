package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMaxAdminsReached   = errors.New("maximum number of admins reached")
	ErrNotPrimaryAdmin    = errors.New("only the primary admin can change passwords")
	ErrGoogleLoginOff     = errors.New("google login is not configured")
)
