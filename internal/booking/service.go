package booking

import (
	"context"
	"errors"
	"time"

	"github.com/huyle/cinema-booking/internal/hold"
	"github.com/huyle/cinema-booking/internal/model"
	"github.com/huyle/cinema-booking/internal/repository"
	"github.com/huyle/cinema-booking/internal/utils"
)

// Store abstracts the persistent seat/booking operations the service
// needs.  repository.Store is the production implementation; tests
// substitute an in-memory fake.
type Store interface {
	// ListSeats returns all seats of a showtime.
	ListSeats(ctx context.Context, showtimeID uint64) ([]model.Seat, error)
	// GetSeat returns a single seat or repository.ErrSeatNotFound.
	GetSeat(ctx context.Context, seatID uint64) (model.Seat, error)
	// CreateBooking atomically marks the seat booked and inserts the
	// booking row, populating its ID.  It returns
	// repository.ErrSeatNotAvailable when the seat was booked through
	// another path first.
	CreateBooking(ctx context.Context, b *model.Booking) error
}

// Effective seat statuses as seen by a viewer.  "available" and
// "booked" come straight from the persistent status; "held" is
// overlaid when someone else has a live hold on the seat.
const (
	StatusAvailable = model.SeatStatusAvailable
	StatusBooked    = model.SeatStatusBooked
	StatusHeld      = "held"
)

// SeatView is the per-viewer effective state of one seat.  It is
// computed on every request and never stored.
type SeatView struct {
	ID            uint64 `json:"id"`
	SeatNumber    string `json:"seat_number"`
	Status        string `json:"status"`
	HeldByViewer  bool   `json:"is_held_by_current_user"`
	RemainingTime int    `json:"remaining_time"` // seconds; zero unless held by the viewer
}

// Service glues the hold registry to the persistent store.  It owns
// the whole hold→book state machine: handlers only translate HTTP to
// these four calls and back.
type Service struct {
	store    Store
	registry *hold.Registry
	now      func() time.Time
}

// NewService constructs a booking service.  Both dependencies must be
// non-nil.
func NewService(store Store, registry *hold.Registry) *Service {
	if store == nil || registry == nil {
		panic("nil dependency passed to booking.NewService")
	}
	return &Service{store: store, registry: registry, now: time.Now}
}

// SetClock replaces the service's time source; tests use it alongside
// the registry clock to control remaining-time calculations.
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// SeatsForViewer resolves the effective state of every seat of a
// showtime for the given viewer.  viewerID 0 means anonymous: the
// viewer then sees held seats as "held" but never as their own.  The
// method is read-only and uses lazy hold expiry, so its answers are
// correct even when the sweeper lags.
func (s *Service) SeatsForViewer(ctx context.Context, showtimeID, viewerID uint64) ([]SeatView, error) {
	seats, err := s.store.ListSeats(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	holds := s.registry.ActiveForShowtime(showtimeID)
	now := s.now()

	views := make([]SeatView, 0, len(seats))
	for _, seat := range seats {
		v := SeatView{
			ID:         seat.ID,
			SeatNumber: seat.SeatNumber,
			Status:     seat.Status,
		}
		if h, ok := holds[seat.ID]; ok {
			if viewerID != 0 && h.UserID == viewerID {
				v.HeldByViewer = true
				v.RemainingTime = h.Remaining(now)
			} else {
				v.Status = StatusHeld
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// HoldSeat places a temporary hold on a seat for the user.  The
// precondition order is fixed: a live hold by another user wins over
// every other failure, then the persistent seat state is re-checked,
// and only then is the hold admitted (which also evicts the user's
// previous hold in the same showtime).
func (s *Service) HoldSeat(ctx context.Context, seatID, showtimeID, userID uint64) (hold.Hold, error) {
	if s.registry.HeldByOther(seatID, userID) {
		return hold.Hold{}, hold.ErrSeatHeldByOther
	}
	seat, err := s.store.GetSeat(ctx, seatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return hold.Hold{}, ErrSeatUnavailable
		}
		return hold.Hold{}, err
	}
	if seat.ShowtimeID != showtimeID || seat.Status != model.SeatStatusAvailable {
		return hold.Hold{}, ErrSeatUnavailable
	}
	// PlaceHold re-checks the held-by-other condition under the
	// registry lock, so a concurrent rival cannot slip in between the
	// pre-check above and this write.
	return s.registry.PlaceHold(seatID, showtimeID, userID)
}

// ReleaseSeat drops the user's hold on the seat.  Only the holder may
// release; anyone else gets hold.ErrNotHolder.
func (s *Service) ReleaseSeat(seatID, userID uint64) error {
	return s.registry.Release(seatID, userID)
}

// Book converts a live, self-owned hold into a durable booking.
// Preconditions in order: a live hold owned by the caller for this
// seat and showtime (ErrNoValidHold), then a persistently available
// seat (ErrSeatUnavailable).  The seat update and booking insert run
// in one transaction inside the store; the hold is removed only after
// that transaction commits, so a storage failure never consumes the
// hold and the caller can retry within the remaining window.
func (s *Service) Book(ctx context.Context, seatID, showtimeID, userID uint64) (model.Booking, error) {
	h, ok := s.registry.Get(seatID)
	if !ok || h.UserID != userID || h.ShowtimeID != showtimeID {
		return model.Booking{}, ErrNoValidHold
	}
	seat, err := s.store.GetSeat(ctx, seatID)
	if err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return model.Booking{}, ErrSeatUnavailable
		}
		return model.Booking{}, ErrStorageFailure
	}
	if seat.Status != model.SeatStatusAvailable {
		return model.Booking{}, ErrSeatUnavailable
	}

	b := model.Booking{
		UserID:     userID,
		ShowtimeID: showtimeID,
		SeatID:     seatID,
		Status:     model.BookingStatusConfirmed,
		QRCode:     utils.NewQRCode(seatID),
	}
	if err := s.store.CreateBooking(ctx, &b); err != nil {
		if errors.Is(err, repository.ErrSeatNotAvailable) {
			// Lost a race with another commit path; the seat is gone.
			return model.Booking{}, ErrSeatUnavailable
		}
		return model.Booking{}, ErrStorageFailure
	}
	s.registry.Complete(seatID)
	return b, nil
}
