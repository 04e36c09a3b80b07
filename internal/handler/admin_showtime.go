package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/huyle/cinema-booking/internal/model"
	"github.com/huyle/cinema-booking/internal/repository"
)

// AdminShowtimeHandler manages showtimes and their seat inventory.
type AdminShowtimeHandler struct {
	Showtimes *repository.ShowtimeRepo
	Movies    *repository.MovieRepo
	Seats     *repository.SeatRepo
}

func NewAdminShowtimeHandler(st *repository.ShowtimeRepo, m *repository.MovieRepo, se *repository.SeatRepo) *AdminShowtimeHandler {
	return &AdminShowtimeHandler{Showtimes: st, Movies: m, Seats: se}
}

type showtimeReq struct {
	MovieID    uint64 `json:"movie_id"`
	Theater    string `json:"theater"`
	ShowDate   string `json:"show_date"`
	ShowTime   string `json:"show_time"`
	PriceCents uint32 `json:"price_cents"`
}

type seatGenReq struct {
	ShowtimeID uint64 `json:"showtime_id"`
	SeatPrefix string `json:"seat_prefix"`
	SeatCount  int    `json:"seat_count"`
}

// maxSeatsPerRequest caps bulk seat generation to keep a single INSERT
// statement within sane bounds.
const maxSeatsPerRequest = 500

// List returns every showtime joined with its movie title, newest
// first.
func (h *AdminShowtimeHandler) List(c echo.Context) error {
	sts, err := h.Showtimes.ListAllWithMovie(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"showtimes": toShowtimeWithMovieResps(sts)})
}

// Create adds a showtime for an existing movie.
func (h *AdminShowtimeHandler) Create(c echo.Context) error {
	var req showtimeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.MovieID == 0 || req.Theater == "" || req.ShowDate == "" || req.ShowTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie_id, theater, show_date and show_time required"})
	}
	ctx := c.Request().Context()
	if _, err := h.Movies.GetByID(ctx, req.MovieID); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	s := model.Showtime{
		MovieID: req.MovieID, Theater: req.Theater,
		ShowDate: req.ShowDate, ShowTime: req.ShowTime, PriceCents: req.PriceCents,
	}
	if err := h.Showtimes.Create(ctx, &s); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, toShowtimeResp(s))
}

// Delete removes a showtime; seats go with it via cascade.
func (h *AdminShowtimeHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	if err := h.Showtimes.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"deleted": true})
}

// GenerateSeats bulk-creates seats prefix1..prefixN for a showtime,
// all starting as available.
func (h *AdminShowtimeHandler) GenerateSeats(c echo.Context) error {
	var req seatGenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.ShowtimeID == 0 || req.SeatPrefix == "" || req.SeatCount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "showtime_id, seat_prefix and seat_count required"})
	}
	if req.SeatCount > maxSeatsPerRequest {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_count too large"})
	}
	ctx := c.Request().Context()
	if _, err := h.Showtimes.GetByID(ctx, req.ShowtimeID); err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	seats := make([]model.Seat, 0, req.SeatCount)
	for i := 1; i <= req.SeatCount; i++ {
		seats = append(seats, model.Seat{
			ShowtimeID: req.ShowtimeID,
			SeatNumber: req.SeatPrefix + strconv.Itoa(i),
			Status:     model.SeatStatusAvailable,
		})
	}
	if err := h.Seats.CreateBulk(ctx, seats); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seat generation failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": len(seats)})
}
