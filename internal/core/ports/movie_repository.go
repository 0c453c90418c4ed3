package ports

import (
	"context"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

// MovieRepository reads the movie catalog. Lookups return
// domain.ErrMovieNotFound when nothing matches.
type MovieRepository interface {
	List(ctx context.Context) ([]*domain.Movie, error)
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	FindByTitle(ctx context.Context, title string) (*domain.Movie, error)
	FindDirector(ctx context.Context, name string) (*domain.Director, error)
	FindGenre(ctx context.Context, name string) (*domain.Genre, error)
}
