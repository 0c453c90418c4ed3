package ports

import (
	"context"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

type MovieService interface {
	List(ctx context.Context) ([]*domain.Movie, error)
	GetByTitle(ctx context.Context, title string) (*domain.Movie, error)
	GetDirector(ctx context.Context, name string) (*domain.Director, error)
	GetGenre(ctx context.Context, name string) (*domain.Genre, error)
}
