package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/huyle/cinema-booking/internal/model"
	"github.com/huyle/cinema-booking/internal/repository"
)

// AdminMovieHandler serves catalog management for admins.  All routes
// sit behind the ADMIN role middleware, so the handlers only validate
// payloads and translate repository errors.
type AdminMovieHandler struct {
	Movies *repository.MovieRepo
}

func NewAdminMovieHandler(m *repository.MovieRepo) *AdminMovieHandler {
	return &AdminMovieHandler{Movies: m}
}

type movieReq struct {
	Title      string `json:"title"`
	Genre      string `json:"genre"`
	PosterURL  string `json:"poster_url"`
	Synopsis   string `json:"synopsis"`
	Duration   uint32 `json:"duration"`
	Director   string `json:"director"`
	Actors     string `json:"actors"`
	TrailerURL string `json:"trailer_url"`
}

// List returns every movie, same payload as the public listing.
func (h *AdminMovieHandler) List(c echo.Context) error {
	movies, err := h.Movies.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": toMovieResps(movies)})
}

// Create adds a movie to the catalog.
func (h *AdminMovieHandler) Create(c echo.Context) error {
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	m := model.Movie{
		Title: req.Title, Genre: req.Genre, PosterURL: req.PosterURL,
		Synopsis: req.Synopsis, Duration: req.Duration,
		Director: req.Director, Actors: req.Actors, TrailerURL: req.TrailerURL,
	}
	if err := h.Movies.Create(c.Request().Context(), &m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, toMovieResp(m))
}

// Update overwrites a movie's fields.
func (h *AdminMovieHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	m := model.Movie{
		ID:    id,
		Title: req.Title, Genre: req.Genre, PosterURL: req.PosterURL,
		Synopsis: req.Synopsis, Duration: req.Duration,
		Director: req.Director, Actors: req.Actors, TrailerURL: req.TrailerURL,
	}
	if err := h.Movies.Update(c.Request().Context(), &m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, toMovieResp(m))
}

// Delete removes a movie; the schema cascades to its showtimes and
// seats.
func (h *AdminMovieHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid movie id"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}
