package service

import (
	"context"
	"fmt"

	"github.com/kraftflix/movie-api/internal/core/domain"
	"github.com/kraftflix/movie-api/internal/core/ports"
)

type MovieService struct {
	repo ports.MovieRepository
}

func NewMovieService(repo ports.MovieRepository) *MovieService {
	return &MovieService{repo: repo}
}

func (s *MovieService) List(ctx context.Context) ([]*domain.Movie, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (s *MovieService) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	movie, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("get movie %q: %w", title, err)
	}
	return movie, nil
}

func (s *MovieService) GetDirector(ctx context.Context, name string) (*domain.Director, error) {
	director, err := s.repo.FindDirector(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get director %q: %w", name, err)
	}
	return director, nil
}

func (s *MovieService) GetGenre(ctx context.Context, name string) (*domain.Genre, error) {
	genre, err := s.repo.FindGenre(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get genre %q: %w", name, err)
	}
	return genre, nil
}
