package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kraftflix/movie-api/internal/core/domain"
	"github.com/kraftflix/movie-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, input ports.UserInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	return s.registerFn(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, error) {
	panic("not used by handlers")
}

func (s *stubAuthService) AuthorizeOwner(context.Context, *domain.User, string) error {
	panic("not used by handlers")
}

type stubUserService struct {
	users   map[string]*domain.User
	deleted []string
	updated ports.UserInput
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUserService) Get(_ context.Context, username string) (*domain.User, error) {
	if u, ok := s.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Update(_ context.Context, username string, input ports.UserInput) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	s.updated = input
	return &domain.User{ID: u.ID, Username: input.Username, Email: input.Email, Birthdate: input.Birthdate}, nil
}

func (s *stubUserService) Delete(_ context.Context, username string) error {
	if _, ok := s.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	s.deleted = append(s.deleted, username)
	return nil
}

func (s *stubUserService) AddFavorite(_ context.Context, username, movieID string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if !u.HasFavorite(movieID) {
		u.FavoriteMovies = append(u.FavoriteMovies, movieID)
	}
	return u, nil
}

func (s *stubUserService) RemoveFavorite(_ context.Context, username, _ string) (*domain.User, error) {
	u, ok := s.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.FavoriteMovies = []string{}
	return u, nil
}

type stubMovieService struct {
	movie *domain.Movie
}

func (s *stubMovieService) List(context.Context) ([]*domain.Movie, error) {
	return []*domain.Movie{s.movie}, nil
}

func (s *stubMovieService) GetByTitle(_ context.Context, title string) (*domain.Movie, error) {
	if title == s.movie.Title {
		return s.movie, nil
	}
	return nil, domain.ErrMovieNotFound
}

func (s *stubMovieService) GetDirector(_ context.Context, name string) (*domain.Director, error) {
	if name == s.movie.Director.Name {
		return &s.movie.Director, nil
	}
	return nil, domain.ErrMovieNotFound
}

func (s *stubMovieService) GetGenre(_ context.Context, name string) (*domain.Genre, error) {
	if name == s.movie.Genre.Name {
		return &s.movie.Genre, nil
	}
	return nil, domain.ErrMovieNotFound
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
