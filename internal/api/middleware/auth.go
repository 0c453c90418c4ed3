package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kraftflix/movie-api/internal/api/handler"
	"github.com/kraftflix/movie-api/internal/api/metrics"
	"github.com/kraftflix/movie-api/internal/core/domain"
)

// Authenticator resolves a bearer token to the current user record.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Authenticate validates the bearer token and stores the resolved user in
// the context. Token failures are returned as domain errors and rendered as
// 401 by the error handler; store failures stay 503.
func Authenticate(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := auth.Authenticate(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				if domain.IsTokenError(err) {
					metrics.TokenRejectionsTotal.WithLabelValues(rejectionKind(err)).Inc()
				}
				return err
			}

			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

func rejectionKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrExpiredToken):
		return "expired"
	case errors.Is(err, domain.ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, domain.ErrUnknownSubject):
		return "unknown_subject"
	default:
		return "malformed"
	}
}
