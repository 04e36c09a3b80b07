package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huyle/cinema-booking/internal/model"
)

// ShowtimeRepo provides data access to the showtimes table.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo { return &ShowtimeRepo{db: db} }

// ShowtimeWithMovie pairs a showtime with the title of its movie for
// the admin listing, saving clients an extra lookup.
type ShowtimeWithMovie struct {
	model.Showtime
	MovieTitle string
}

// ListByMovie returns all showtimes of a movie ordered by date and time.
func (r *ShowtimeRepo) ListByMovie(ctx context.Context, movieID uint64) ([]model.Showtime, error) {
	const q = `SELECT id, movie_id, theater, show_date, show_time, price_cents
			   FROM showtimes
			   WHERE movie_id = ?
			   ORDER BY show_date, show_time`
	rows, err := r.db.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Showtime
	for rows.Next() {
		var s model.Showtime
		if err := rows.Scan(&s.ID, &s.MovieID, &s.Theater, &s.ShowDate, &s.ShowTime, &s.PriceCents); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// ListAllWithMovie returns every showtime joined with its movie title,
// newest show date first.  Used by the admin listing.
func (r *ShowtimeRepo) ListAllWithMovie(ctx context.Context) ([]ShowtimeWithMovie, error) {
	const q = `SELECT s.id, s.movie_id, s.theater, s.show_date, s.show_time, s.price_cents,
					  COALESCE(m.title, '')
			   FROM showtimes s
			   LEFT JOIN movies m ON m.id = s.movie_id
			   ORDER BY s.show_date DESC, s.show_time DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ShowtimeWithMovie
	for rows.Next() {
		var s ShowtimeWithMovie
		if err := rows.Scan(&s.ID, &s.MovieID, &s.Theater, &s.ShowDate, &s.ShowTime, &s.PriceCents, &s.MovieTitle); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// GetByID retrieves a showtime.  Returns ErrShowtimeNotFound when the
// id does not exist.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (model.Showtime, error) {
	const q = `SELECT id, movie_id, theater, show_date, show_time, price_cents
			   FROM showtimes WHERE id = ?`
	var s model.Showtime
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.MovieID, &s.Theater, &s.ShowDate, &s.ShowTime, &s.PriceCents)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Showtime{}, ErrShowtimeNotFound
	}
	return s, err
}

// Create inserts a showtime and populates its ID on success.
func (r *ShowtimeRepo) Create(ctx context.Context, s *model.Showtime) error {
	const q = `INSERT INTO showtimes (movie_id, theater, show_date, show_time, price_cents)
			   VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.Theater, s.ShowDate, s.ShowTime, s.PriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// Delete removes a showtime by id.  Returns ErrShowtimeNotFound when
// no row matched.  Seats of the showtime are removed by the schema's
// cascading foreign key.
func (r *ShowtimeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM showtimes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}
