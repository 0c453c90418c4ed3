package ports

import (
	"context"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

// UserRepository is the credential store. Lookups return
// domain.ErrUserNotFound when nothing matches; any other error is a store
// failure.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Create returns domain.ErrUserExists on a duplicate username.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, fields domain.UserUpdate) (*domain.User, error)
	// Delete reports whether a document was removed.
	Delete(ctx context.Context, id string) (bool, error)
	// AddFavorite and RemoveFavorite have set semantics on the favorites list.
	AddFavorite(ctx context.Context, id, movieID string) (*domain.User, error)
	RemoveFavorite(ctx context.Context, id, movieID string) (*domain.User, error)
}
