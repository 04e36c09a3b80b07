package repository // repository defines data access for seats

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"errors"       // errors for sentinel comparisons

	"github.com/huyle/cinema-booking/internal/model"
)

// SeatRepo provides methods to work with seats in the database.  Seat
// status transitions are deliberately narrow: rows are created as
// available and only ever flip to booked inside the booking commit
// transaction via MarkBookedTx.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// DB exposes the underlying handle so callers can open transactions
// spanning seats and bookings.
func (r *SeatRepo) DB() *sql.DB { return r.db }

// ListByShowtime retrieves all seats of a showtime ordered by their label.
func (r *SeatRepo) ListByShowtime(ctx context.Context, showtimeID uint64) ([]model.Seat, error) {
	const q = `SELECT id, showtime_id, seat_number, status
			   FROM seats
			   WHERE showtime_id = ?
			   ORDER BY seat_number`
	rows, err := r.db.QueryContext(ctx, q, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.ShowtimeID, &s.SeatNumber, &s.Status); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetByID retrieves a seat by its id.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (model.Seat, error) {
	const q = `SELECT id, showtime_id, seat_number, status FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.ShowtimeID, &s.SeatNumber, &s.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Seat{}, ErrSeatNotFound
	}
	return s, err
}

// CreateBulk inserts multiple seats in a single statement.  Used by
// the admin seat generation endpoint.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (showtime_id, seat_number, status) VALUES `
	args := make([]interface{}, 0, len(seats)*3)
	for i, seat := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		status := seat.Status
		if status == "" {
			status = model.SeatStatusAvailable
		}
		args = append(args, seat.ShowtimeID, seat.SeatNumber, status)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// MarkBookedTx flips a seat from available to booked inside the given
// transaction.  The status guard in the WHERE clause makes the
// transition race-safe: when another booking got there first, zero
// rows match and ErrSeatNotAvailable is returned so the caller can
// roll back.
func (r *SeatRepo) MarkBookedTx(ctx context.Context, tx *sql.Tx, seatID uint64) error {
	const q = `UPDATE seats SET status = ? WHERE id = ? AND status = ?`
	res, err := tx.ExecContext(ctx, q, model.SeatStatusBooked, seatID, model.SeatStatusAvailable)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotAvailable
	}
	return nil
}
