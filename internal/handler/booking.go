package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/huyle/cinema-booking/internal/booking"
	"github.com/huyle/cinema-booking/internal/hold"
	"github.com/huyle/cinema-booking/internal/queue"
	"github.com/huyle/cinema-booking/internal/repository"
	queue_publisher "github.com/huyle/cinema-booking/internal/service"
)

// BookingHandler serves the hold → book flow and the customer's ticket
// listing.  The seat map endpoint is the only one that tolerates
// anonymous callers; everything else requires a valid token.
type BookingHandler struct {
	Svc       *booking.Service
	Bookings  *repository.BookingRepo
	Showtimes *repository.ShowtimeRepo
	Movies    *repository.MovieRepo
	SeatRepo  *repository.SeatRepo
}

func NewBookingHandler(svc *booking.Service, b *repository.BookingRepo,
	st *repository.ShowtimeRepo, m *repository.MovieRepo, se *repository.SeatRepo) *BookingHandler {
	return &BookingHandler{Svc: svc, Bookings: b, Showtimes: st, Movies: m, SeatRepo: se}
}

// ----- DTOs -----

type holdReq struct {
	SeatID     uint64 `json:"seat_id"`
	ShowtimeID uint64 `json:"showtime_id"`
}
type releaseReq struct {
	SeatID uint64 `json:"seat_id"`
}
type bookReq struct {
	SeatID     uint64 `json:"seat_id"`
	ShowtimeID uint64 `json:"showtime_id"`
}

// Seats returns the seat map of a showtime with each seat's effective
// status for the caller.  Works with or without a token: anonymous
// viewers see held seats as "held" but never as their own.
func (h *BookingHandler) Seats(c echo.Context) error {
	showtimeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid showtime id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Showtimes.GetByID(ctx, showtimeID); err != nil {
		if errors.Is(err, repository.ErrShowtimeNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "showtime not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	views, err := h.Svc.SeatsForViewer(ctx, showtimeID, viewerID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if views == nil {
		views = []booking.SeatView{}
	}
	return c.JSON(http.StatusOK, echo.Map{"seats": views})
}

// HoldSeat places (or renews) a temporary hold on a seat.  Renewal by
// the same user refreshes the expiry; holding a second seat in the
// same showtime silently drops the first.
func (h *BookingHandler) HoldSeat(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req holdReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 || req.ShowtimeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id and showtime_id required"})
	}

	held, err := h.Svc.HoldSeat(c.Request().Context(), req.SeatID, req.ShowtimeID, uid)
	if err != nil {
		switch {
		case errors.Is(err, hold.ErrSeatHeldByOther):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat is held by another user"})
		case errors.Is(err, booking.ErrSeatUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat is not available"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hold failed"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"seat_id":        req.SeatID,
		"remaining_time": held.Remaining(time.Now()),
		"expires_at":     held.ExpiresAt,
	})
}

// ReleaseSeat drops the caller's hold on a seat.
func (h *BookingHandler) ReleaseSeat(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req releaseReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id required"})
	}
	if err := h.Svc.ReleaseSeat(req.SeatID, uid); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no hold to release"})
	}
	return c.JSON(http.StatusOK, echo.Map{"released": true})
}

// Book converts the caller's live hold into a durable booking.  A
// storage failure keeps the hold alive so the client can retry inside
// its remaining window; the handler surfaces that as 503.
func (h *BookingHandler) Book(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req bookReq
	if err := c.Bind(&req); err != nil || req.SeatID == 0 || req.ShowtimeID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_id and showtime_id required"})
	}

	b, err := h.Svc.Book(c.Request().Context(), req.SeatID, req.ShowtimeID, uid)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNoValidHold):
			return c.JSON(http.StatusConflict, echo.Map{"error": "no valid hold for this seat"})
		case errors.Is(err, booking.ErrSeatUnavailable):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat is no longer available"})
		case errors.Is(err, booking.ErrStorageFailure):
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "booking failed, please retry"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}

	go h.publishConfirmed(b.ID, b.UserID, b.ShowtimeID, b.SeatID, b.QRCode)

	return c.JSON(http.StatusCreated, echo.Map{
		"booking_id": b.ID,
		"seat_id":    b.SeatID,
		"status":     b.Status,
		"qr_code":    b.QRCode,
	})
}

// MyBookings lists the caller's tickets, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Bookings.ListByUser(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if list == nil {
		list = []repository.BookingDetail{}
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": list})
}

// publishConfirmed enriches and publishes the booking.confirmed event.
// Best effort: any failure is logged by the publisher and ignored so
// the booking response is never delayed or failed by the broker.
func (h *BookingHandler) publishConfirmed(bookingID, userID, showtimeID, seatID uint64, qrCode string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ev := queue.BookingConfirmedEvent{
		BookingID:   bookingID,
		UserID:      userID,
		ShowtimeID:  showtimeID,
		QRCode:      qrCode,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if h.Showtimes != nil {
		if st, err := h.Showtimes.GetByID(ctx, showtimeID); err == nil {
			ev.Theater = st.Theater
			ev.ShowDate = st.ShowDate
			ev.ShowTime = st.ShowTime
			if m, err := h.Movies.GetByID(ctx, st.MovieID); err == nil {
				ev.MovieTitle = m.Title
			}
		}
	}
	if h.SeatRepo != nil {
		if seat, err := h.SeatRepo.GetByID(ctx, seatID); err == nil {
			ev.SeatNumber = seat.SeatNumber
		}
	}
	_ = queue_publisher.PublishBookingConfirmed(ctx, ev)
}
