package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kraftflix/movie-api/internal/core/ports"
)

// UserHandler serves the /users routes. Owner checks run in middleware
// before any of these handlers.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:username.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update handles PUT /users/:username.
func (h *UserHandler) Update(c echo.Context) error {
	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Update(c.Request().Context(), c.Param("username"), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Delete handles DELETE /users/:username.
func (h *UserHandler) Delete(c echo.Context) error {
	username := c.Param("username")
	if err := h.service.Delete(c.Request().Context(), username); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: fmt.Sprintf("%s was deleted.", username)})
}

// AddFavorite handles POST /users/:username/movies/:movieID.
func (h *UserHandler) AddFavorite(c echo.Context) error {
	user, err := h.service.AddFavorite(c.Request().Context(), c.Param("username"), c.Param("movieID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RemoveFavorite handles DELETE /users/:username/movies/:movieID.
func (h *UserHandler) RemoveFavorite(c echo.Context) error {
	user, err := h.service.RemoveFavorite(c.Request().Context(), c.Param("username"), c.Param("movieID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
