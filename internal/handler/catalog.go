package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/huyle/cinema-booking/internal/repository"
)

// CatalogHandler serves the public movie catalog: movie listings and
// the showtimes of a movie.  All endpoints are read-only and need no
// authentication.
type CatalogHandler struct {
	Movies    *repository.MovieRepo
	Showtimes *repository.ShowtimeRepo
}

func NewCatalogHandler(m *repository.MovieRepo, s *repository.ShowtimeRepo) *CatalogHandler {
	return &CatalogHandler{Movies: m, Showtimes: s}
}

// ListMovies returns every movie in the catalog.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	movies, err := h.Movies.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": toMovieResps(movies)})
}

// GetMovie returns a single movie by id.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	m, err := h.Movies.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toMovieResp(m))
}

// ListShowtimes returns the showtimes of a movie ordered by date and
// time.  A movie with no showtimes yields an empty list, not 404.
func (h *CatalogHandler) ListShowtimes(c echo.Context) error {
	movieID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	sts, err := h.Showtimes.ListByMovie(c.Request().Context(), movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"showtimes": toShowtimeResps(sts)})
}
