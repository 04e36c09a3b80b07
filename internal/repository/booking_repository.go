package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/huyle/cinema-booking/internal/model"
)

// BookingRepo provides data access to the bookings table.  Bookings
// are insert-only: once written during the commit protocol they are
// never updated or deleted.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateTx inserts a booking within the provided transaction and
// populates its ID.  It shares a transaction with the seat status
// update so a crash between the two cannot leave a booked seat with no
// booking row.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, showtime_id, seat_id, status, qr_code)
			   VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.ShowtimeID, b.SeatID, b.Status, b.QRCode)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// BookingDetail is a booking joined with movie, showtime and seat
// information for the customer's ticket listing.
type BookingDetail struct {
	ID         uint64 `json:"id"`
	QRCode     string `json:"qr_code"`
	Status     string `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	MovieTitle string `json:"movie_title"`
	PosterURL  string `json:"poster_url"`
	Theater    string `json:"theater"`
	ShowDate   string `json:"show_date"`
	ShowTime   string `json:"show_time"`
	SeatNumber string `json:"seat_number"`
}

// ListByUser returns all bookings of a user with full ticket details,
// newest first.  Mirrors the four-way join the ticket page needs.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	const q = `SELECT b.id, b.qr_code, b.status, b.created_at,
					  m.title, m.poster_url,
					  s.theater, s.show_date, s.show_time,
					  se.seat_number
			   FROM bookings b
			   JOIN showtimes s ON s.id = b.showtime_id
			   JOIN movies m ON m.id = s.movie_id
			   JOIN seats se ON se.id = b.seat_id
			   WHERE b.user_id = ?
			   ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BookingDetail
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(&d.ID, &d.QRCode, &d.Status, &d.CreatedAt,
			&d.MovieTitle, &d.PosterURL, &d.Theater, &d.ShowDate, &d.ShowTime, &d.SeatNumber); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, rows.Err()
}
