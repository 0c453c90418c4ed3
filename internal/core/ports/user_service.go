package ports

import (
	"context"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

// UserService covers the profile and favorites operations. Ownership is
// enforced before these are called.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, username string, input UserInput) (*domain.User, error)
	Delete(ctx context.Context, username string) error
	AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error)
}
