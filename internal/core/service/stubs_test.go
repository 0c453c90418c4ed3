package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

type stubUserRepo struct {
	mu          sync.Mutex
	users       map[string]*domain.User // by ID
	nextID      int
	findErr     error
	deletes     int
	creates     int
	lookupsByID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.FavoriteMovies = append([]string(nil), u.FavoriteMovies...)
	return &clone
}

func (r *stubUserRepo) byUsername(username string) *domain.User {
	for _, u := range r.users {
		if u.Username == username {
			return u
		}
	}
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u := r.byUsername(username); u != nil {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookupsByID++
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byUsername(user.Username) != nil {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	r.creates++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("id-%d", r.nextID)
	r.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, fields domain.UserUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if other := r.byUsername(fields.Username); other != nil && other.ID != id {
		return nil, domain.ErrUserExists
	}
	u.Username = fields.Username
	u.Email = fields.Email
	u.PasswordHash = fields.PasswordHash
	u.Birthdate = fields.Birthdate
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *stubUserRepo) AddFavorite(_ context.Context, id, movieID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if !u.HasFavorite(movieID) {
		u.FavoriteMovies = append(u.FavoriteMovies, movieID)
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) RemoveFavorite(_ context.Context, id, movieID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	kept := u.FavoriteMovies[:0]
	for _, m := range u.FavoriteMovies {
		if m != movieID {
			kept = append(kept, m)
		}
	}
	u.FavoriteMovies = kept
	return cloneUser(u), nil
}

type stubMovieRepo struct {
	movies map[string]*domain.Movie // by ID
}

func newStubMovieRepo(movies ...*domain.Movie) *stubMovieRepo {
	r := &stubMovieRepo{movies: make(map[string]*domain.Movie)}
	for _, m := range movies {
		r.movies[m.ID] = m
	}
	return r
}

func (r *stubMovieRepo) List(_ context.Context) ([]*domain.Movie, error) {
	out := make([]*domain.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		out = append(out, m)
	}
	return out, nil
}

func (r *stubMovieRepo) FindByID(_ context.Context, id string) (*domain.Movie, error) {
	if m, ok := r.movies[id]; ok {
		return m, nil
	}
	return nil, domain.ErrMovieNotFound
}

func (r *stubMovieRepo) FindByTitle(_ context.Context, title string) (*domain.Movie, error) {
	for _, m := range r.movies {
		if m.Title == title {
			return m, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (r *stubMovieRepo) FindDirector(_ context.Context, name string) (*domain.Director, error) {
	for _, m := range r.movies {
		if m.Director.Name == name {
			d := m.Director
			return &d, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (r *stubMovieRepo) FindGenre(_ context.Context, name string) (*domain.Genre, error) {
	for _, m := range r.movies {
		if m.Genre.Name == name {
			g := m.Genre
			return &g, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

type stubThrottle struct {
	allow    bool
	allowErr error
	failures map[string]int
	resets   []string
}

func newStubThrottle() *stubThrottle {
	return &stubThrottle{allow: true, failures: make(map[string]int)}
}

func (t *stubThrottle) Allow(_ context.Context, _ string) (bool, error) {
	return t.allow, t.allowErr
}

func (t *stubThrottle) RecordFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	t.resets = append(t.resets, username)
	return nil
}

type stubAudit struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (a *stubAudit) Publish(event domain.AuthEvent) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return true
}

func (a *stubAudit) types() []domain.AuthEventType {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]domain.AuthEventType, 0, len(a.events))
	for _, e := range a.events {
		out = append(out, e.Type)
	}
	return out
}
