package domain

import "errors"

// Authentication and authorization failures.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password; callers must not be able to tell them apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMalformedToken     = errors.New("malformed token")
	ErrBadSignature       = errors.New("token signature invalid")
	ErrExpiredToken       = errors.New("token expired")
	// ErrUnknownSubject means the token is well formed but its user is gone.
	ErrUnknownSubject   = errors.New("token subject no longer exists")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTooManyAttempts  = errors.New("too many failed login attempts")
)

// ErrStoreUnavailable wraps failures of the backing store. It is never an
// authentication failure.
var ErrStoreUnavailable = errors.New("store unavailable")

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserExists    = errors.New("user already exists")
	ErrMovieNotFound = errors.New("movie not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// IsTokenError reports whether err is one of the bearer token rejections.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrBadSignature) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrUnknownSubject)
}
