package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kraftflix/movie-api/internal/core/ports"
)

type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) GetByTitle(c echo.Context) error {
	movie, err := h.service.GetByTitle(c.Request().Context(), c.Param("title"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

func (h *MovieHandler) GetDirector(c echo.Context) error {
	director, err := h.service.GetDirector(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, director)
}

func (h *MovieHandler) GetGenre(c echo.Context) error {
	genre, err := h.service.GetGenre(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genre)
}

// Welcome handles GET /.
func Welcome(c echo.Context) error {
	return c.String(http.StatusOK, "Welcome to myFlix!")
}
