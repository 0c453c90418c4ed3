package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kraftflix/movie-api/internal/core/domain"
	"github.com/kraftflix/movie-api/internal/core/ports"
)

// UserService runs the profile and favorites operations. Callers have
// already passed the owner check for the username they pass in.
type UserService struct {
	users  ports.UserRepository
	movies ports.MovieRepository
	hasher *PasswordHasher
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, movies ports.MovieRepository, hasher *PasswordHasher, logger zerolog.Logger) *UserService {
	return &UserService{users: users, movies: movies, hasher: hasher, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Update replaces username, email, password and birthdate. The password is
// hashed again; renaming onto an existing username fails with ErrUserExists.
func (s *UserService) Update(ctx context.Context, username string, input ports.UserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	current, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if input.Username != current.Username {
		_, err := s.users.FindByUsername(ctx, input.Username)
		switch {
		case err == nil:
			return nil, domain.ErrUserExists
		case !errors.Is(err, domain.ErrUserNotFound):
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("update user: hash password: %w", err)
	}

	updated, err := s.users.Update(ctx, current.ID, domain.UserUpdate{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Birthdate:    input.Birthdate,
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.logger.Info().Str("user_id", updated.ID).Str("username", updated.Username).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	current, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	deleted, err := s.users.Delete(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if !deleted {
		return domain.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", current.ID).Str("username", username).Msg("user deleted")
	return nil
}

// AddFavorite adds movieID to the user's favorites. Adding a movie twice
// leaves a single entry.
func (s *UserService) AddFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	current, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	if _, err := s.movies.FindByID(ctx, movieID); err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}

	updated, err := s.users.AddFavorite(ctx, current.ID, movieID)
	if err != nil {
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	return updated, nil
}

func (s *UserService) RemoveFavorite(ctx context.Context, username, movieID string) (*domain.User, error) {
	current, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}

	updated, err := s.users.RemoveFavorite(ctx, current.ID, movieID)
	if err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	return updated, nil
}
