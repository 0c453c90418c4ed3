package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/kraftflix/movie-api/internal/core/domain"
)

const userContextKey = "auth.user"

// SetCurrentUser stores the authenticated user on the request context.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}

// CurrentUser returns the user resolved by the Authenticate middleware, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(userContextKey).(*domain.User)
	return u
}
