package ports

import (
	"context"
	"time"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

// UserInput carries the profile fields accepted on registration and update.
type UserInput struct {
	Username  string
	Password  string
	Email     string
	Birthdate *time.Time
}

// AuthService owns the login handshake and per-request identity checks.
type AuthService interface {
	Register(ctx context.Context, input UserInput) (*domain.User, error)
	// Login verifies credentials and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Authenticate verifies a bearer token and resolves it to a current user.
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	// AuthorizeOwner allows the request only when user is the named owner.
	AuthorizeOwner(ctx context.Context, user *domain.User, owner string) error
}
