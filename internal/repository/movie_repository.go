package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/huyle/cinema-booking/internal/model"
)

// MovieRepo provides data access to the movies table.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = `id, title, genre, poster_url, synopsis, duration, director, actors, trailer_url`

func scanMovie(row interface{ Scan(...any) error }) (model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Genre, &m.PosterURL, &m.Synopsis,
		&m.Duration, &m.Director, &m.Actors, &m.TrailerURL)
	return m, err
}

// ListAll returns every movie in the catalog ordered by id.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// GetByID retrieves a single movie.  Returns ErrMovieNotFound when the
// id does not exist.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Create inserts a movie and populates its ID on success.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, genre, poster_url, synopsis, duration, director, actors, trailer_url)
			   VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Genre, m.PosterURL, m.Synopsis,
		m.Duration, m.Director, m.Actors, m.TrailerURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update overwrites all mutable columns of a movie.  Returns
// ErrMovieNotFound when no row matched.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
			   SET title = ?, genre = ?, poster_url = ?, synopsis = ?, duration = ?, director = ?, actors = ?, trailer_url = ?
			   WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Genre, m.PosterURL, m.Synopsis,
		m.Duration, m.Director, m.Actors, m.TrailerURL, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a movie by id.  Returns ErrMovieNotFound when no row
// matched.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}
