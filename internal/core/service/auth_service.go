package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kraftflix/movie-api/internal/core/domain"
	"github.com/kraftflix/movie-api/internal/core/ports"
)

// LoginThrottle limits repeated failed logins for one username (Redis).
type LoginThrottle interface {
	Allow(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuditSink receives audit events. Publish must not block the request.
type AuditSink interface {
	Publish(event domain.AuthEvent) bool
}

// credentialRejection keeps the internal reason of a failed credential check
// for logs and the audit trail. Externally it is ErrInvalidCredentials.
type credentialRejection struct {
	reason string
}

func (r *credentialRejection) Error() string { return "invalid credentials: " + r.reason }
func (r *credentialRejection) Unwrap() error { return domain.ErrInvalidCredentials }

const (
	reasonUnknownUser   = "incorrect username"
	reasonWrongPassword = "incorrect password"
)

// AuthService implements registration, login, token authentication and the
// owner check.
type AuthService struct {
	repo     ports.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenManager
	throttle LoginThrottle
	audit    AuditSink
	log      zerolog.Logger
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

type AuthOption func(*AuthService)

func WithLoginThrottle(t LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

func WithAuditSink(a AuditSink) AuthOption {
	return func(s *AuthService) { s.audit = a }
}

func NewAuthService(repo ports.UserRepository, hasher *PasswordHasher, tokens *TokenManager, log zerolog.Logger, opts ...AuthOption) *AuthService {
	s := &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" || input.Email == "" {
		return nil, domain.ErrInvalidInput
	}

	// The unique index still catches a concurrent registration; Create maps
	// it to the same ErrUserExists.
	_, err := s.repo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, storeError("register", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   hash,
		Birthdate:      input.Birthdate,
		FavoriteMovies: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.ErrUserExists
		}
		return nil, storeError("register", err)
	}

	s.log.Info().Str("username", created.Username).Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// VerifyCredentials checks a username/password pair against the store. Both
// an unknown username and a wrong password return ErrInvalidCredentials.
func (s *AuthService) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a comparable amount of time so response latency does not
			// reveal whether the username exists.
			s.hasher.Verify(password, s.placeholderHash())
			return nil, &credentialRejection{reason: reasonUnknownUser}
		}
		return nil, storeError("verify credentials", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, &credentialRejection{reason: reasonWrongPassword}
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, username)
		if err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, continuing")
		} else if !allowed {
			s.publish(domain.AuthEvent{Type: domain.AuthEventLoginThrottled, Username: username})
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		var rejection *credentialRejection
		if errors.As(err, &rejection) {
			s.log.Debug().Str("username", username).Str("reason", rejection.reason).Msg("login rejected")
			s.recordFailure(ctx, username)
			s.publish(domain.AuthEvent{Type: domain.AuthEventLoginFailed, Username: username, Reason: rejection.reason})
		}
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Str("username", username).Msg("failed to reset login throttle")
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, err
	}

	s.publish(domain.AuthEvent{Type: domain.AuthEventLoginSucceeded, Username: user.Username, TokenID: token.ID})
	s.log.Info().Str("username", user.Username).Str("jti", token.ID).Time("expires_at", token.ExpiresAt).Msg("login succeeded")

	return token.Token, user, nil
}

// Authenticate verifies a bearer token and resolves its subject against the
// store. A valid token whose user was deleted is rejected with
// ErrUnknownSubject.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("authenticate %q: %w", claims.Subject, domain.ErrUnknownSubject)
		}
		return nil, storeError("authenticate", err)
	}
	return user, nil
}

func (s *AuthService) AuthorizeOwner(ctx context.Context, user *domain.User, owner string) error {
	if err := Authorize(user, owner); err != nil {
		username := ""
		if user != nil {
			username = user.Username
		}
		s.log.Info().Str("username", username).Str("owner", owner).Msg("access denied")
		s.publish(domain.AuthEvent{Type: domain.AuthEventAccessDenied, Username: username, Target: owner})
		return err
	}
	return nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
	}
}

func (s *AuthService) publish(event domain.AuthEvent) {
	if s.audit == nil {
		return
	}
	event.At = s.now().UTC()
	if !s.audit.Publish(event) {
		s.log.Warn().Str("type", string(event.Type)).Str("username", event.Username).Msg("audit event dropped")
	}
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("placeholder-password")
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}
