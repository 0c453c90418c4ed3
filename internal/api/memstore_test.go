package api

import (
	"context"
	"fmt"
	"sync"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

// memUsers is an in-memory ports.UserRepository that counts mutating calls.
type memUsers struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	seq     int
	writes  int
	deletes int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: make(map[string]*domain.User)}
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	c.FavoriteMovies = append([]string{}, u.FavoriteMovies...)
	return &c
}

func (m *memUsers) find(username string) *domain.User {
	for _, u := range m.byID {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (m *memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u := m.find(username); u != nil {
		return copyUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		return copyUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) List(_ context.Context) ([]*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (m *memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(user.Username) != nil {
		return nil, domain.ErrUserExists
	}
	m.seq++
	m.writes++
	u := copyUser(user)
	u.ID = fmt.Sprintf("%024x", m.seq)
	m.byID[u.ID] = u
	return copyUser(u), nil
}

func (m *memUsers) Update(_ context.Context, id string, fields domain.UserUpdate) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username, u.Email, u.PasswordHash, u.Birthdate = fields.Username, fields.Email, fields.PasswordHash, fields.Birthdate
	return copyUser(u), nil
}

func (m *memUsers) Delete(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

func (m *memUsers) AddFavorite(_ context.Context, id, movieID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if !u.HasFavorite(movieID) {
		u.FavoriteMovies = append(u.FavoriteMovies, movieID)
	}
	return copyUser(u), nil
}

func (m *memUsers) RemoveFavorite(_ context.Context, id, movieID string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	kept := []string{}
	for _, f := range u.FavoriteMovies {
		if f != movieID {
			kept = append(kept, f)
		}
	}
	u.FavoriteMovies = kept
	return copyUser(u), nil
}

// memMovies is a fixed in-memory catalog.
type memMovies []*domain.Movie

func (m memMovies) List(context.Context) ([]*domain.Movie, error) { return m, nil }

func (m memMovies) FindByID(_ context.Context, id string) (*domain.Movie, error) {
	for _, mv := range m {
		if mv.ID == id {
			return mv, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (m memMovies) FindByTitle(_ context.Context, title string) (*domain.Movie, error) {
	for _, mv := range m {
		if mv.Title == title {
			return mv, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (m memMovies) FindDirector(_ context.Context, name string) (*domain.Director, error) {
	for _, mv := range m {
		if mv.Director.Name == name {
			return &mv.Director, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (m memMovies) FindGenre(_ context.Context, name string) (*domain.Genre, error) {
	for _, mv := range m {
		if mv.Genre.Name == name {
			return &mv.Genre, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}
