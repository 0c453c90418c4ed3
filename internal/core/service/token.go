package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

// DefaultTokenTTL is how long an issued bearer token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims is the payload of a bearer token. The registered subject is the
// username; UserID is what the token is resolved by on every request.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// AccessToken is a signed bearer token together with its jti and expiry.
type AccessToken struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}

// TokenManager issues and verifies HS256 bearer tokens with a single
// process-wide secret. It holds no mutable state and is safe for concurrent
// use. Changing the secret invalidates every token issued before.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type TokenOption func(*TokenManager)

// WithClock overrides the time source used for iat/exp and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) { m.now = now }
}

func NewTokenManager(secret string, ttl time.Duration, opts ...TokenOption) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token manager: signing secret is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	m := &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	return m, nil
}

// TTL returns the lifetime given to issued tokens.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// Issue signs a token for user. It must only be called after the user's
// credentials were verified.
func (m *TokenManager) Issue(user *domain.User) (AccessToken, error) {
	now := m.now().UTC()
	exp := now.Add(m.ttl)
	id := uuid.NewString()

	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        id,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return AccessToken{Token: signed, ID: id, ExpiresAt: exp}, nil
}

// Verify checks structure, signature and expiry, in that order, and returns
// the claims. It does not look the subject up; see AuthService.Authenticate.
func (m *TokenManager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if claims.UserID == "" || claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrMalformedToken)
	}
	return claims, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", domain.ErrBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", domain.ErrExpiredToken, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrMalformedToken, err)
	}
}
