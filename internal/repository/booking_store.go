package repository

import (
	"context"
	"database/sql"

	"github.com/huyle/cinema-booking/internal/model"
)

// Store bundles the seat and booking repositories behind the narrow
// surface the booking service consumes, and owns the commit
// transaction that spans both tables.
type Store struct {
	db       *sql.DB
	seats    *SeatRepo
	bookings *BookingRepo
}

// NewStore constructs a Store.  All dependencies must be non-nil.
func NewStore(db *sql.DB, seats *SeatRepo, bookings *BookingRepo) *Store {
	if db == nil || seats == nil || bookings == nil {
		panic("nil dependency passed to repository.NewStore")
	}
	return &Store{db: db, seats: seats, bookings: bookings}
}

// ListSeats returns all seats of a showtime.
func (s *Store) ListSeats(ctx context.Context, showtimeID uint64) ([]model.Seat, error) {
	return s.seats.ListByShowtime(ctx, showtimeID)
}

// GetSeat returns a single seat or ErrSeatNotFound.
func (s *Store) GetSeat(ctx context.Context, seatID uint64) (model.Seat, error) {
	return s.seats.GetByID(ctx, seatID)
}

// CreateBooking marks the seat booked and inserts the booking row in a
// single transaction.  When the seat status guard matches zero rows
// the transaction is rolled back and ErrSeatNotAvailable is returned;
// any other failure also rolls back, leaving the seat untouched.
func (s *Store) CreateBooking(ctx context.Context, b *model.Booking) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := s.seats.MarkBookedTx(ctx, tx, b.SeatID); err != nil {
		return err
	}
	if err := s.bookings.CreateTx(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
