package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/kraftflix/movie-api/internal/core/domain"
	"github.com/kraftflix/movie-api/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.UserInput) (*domain.User, error) {
			if input.Username != "alice" || input.Password != "secret" || input.Email != "a@example.com" {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.Birthdate == nil || input.Birthdate.Format("2006-01-02") != "1990-04-01" {
				t.Fatalf("birthdate not parsed: %v", input.Birthdate)
			}
			return &domain.User{ID: "1", Username: input.Username, Email: input.Email, PasswordHash: "hash"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/users",
		`{"Username":"alice","Password":"secret","Email":"a@example.com","Birthdate":"1990-04-01"}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash must not be serialized: %+v", resp)
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.UserInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/users", `{"username":"bobby","password":"x","email":"b@example.com"}`)

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Register_ValidationFails(t *testing.T) {
	bodies := []string{
		`{"username":"bob","password":"x","email":"b@example.com"}`,
		`{"username":"bob by","password":"x","email":"b@example.com"}`,
		`{"username":"bobby","email":"b@example.com"}`,
		`{"username":"bobby","password":"x","email":"not-an-email"}`,
		`{"username":"bobby","password":"x","email":"b@example.com","birthdate":"01/04/1990"}`,
	}
	for _, body := range bodies {
		e := newTestEcho()
		stub := &stubAuthService{
			registerFn: func(ctx context.Context, input ports.UserInput) (*domain.User, error) {
				t.Fatalf("should not be called for %s", body)
				return nil, nil
			},
		}
		c, _ := jsonContext(e, http.MethodPost, "/users", body)

		if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %s, got %v", body, err)
		}
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, input ports.UserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c, _ := jsonContext(e, http.MethodPost, "/users", "not-json")

	err := NewAuthHandler(stub).Register(c)
	if code := httpCode(err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (%v)", code, err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			if username != "alice" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return "token123", &domain.User{ID: "1", Username: "alice"}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/login", `{"Username":"alice","Password":"secret"}`)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	c, rec := jsonContext(e, http.MethodPost, "/login", `{"username":"alice","password":"bad"}`)

	if err := NewAuthHandler(stub).Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("handler must leave rendering to the error handler")
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	c, _ := jsonContext(e, http.MethodPost, "/login", "{")

	if code := httpCode(NewAuthHandler(stub).Login(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestLoginResult(t *testing.T) {
	cases := map[error]string{
		domain.ErrInvalidCredentials: "invalid_credentials",
		domain.ErrTooManyAttempts:    "throttled",
		errors.New("boom"):           "error",
	}
	for err, want := range cases {
		if got := loginResult(err); got != want {
			t.Fatalf("loginResult(%v) = %q, want %q", err, got, want)
		}
	}
}
