package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/kraftflix/movie-api/internal/api/handler"
	"github.com/kraftflix/movie-api/internal/api/metrics"
	"github.com/kraftflix/movie-api/internal/core/domain"
)

// OwnerAuthorizer decides whether user may act on resources owned by owner.
type OwnerAuthorizer interface {
	AuthorizeOwner(ctx context.Context, user *domain.User, owner string) error
}

// RequireOwner only lets the request through when the authenticated user is
// the one named by the path parameter param. It must run after Authenticate.
func RequireOwner(authz OwnerAuthorizer, param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authz.AuthorizeOwner(c.Request().Context(), handler.CurrentUser(c), c.Param(param)); err != nil {
				metrics.AuthorizationDeniedTotal.Inc()
				return err
			}
			return next(c)
		}
	}
}
