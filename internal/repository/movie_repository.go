package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Movie mirrors the movies table. Duration is in minutes.
type Movie struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	DurationMin *uint32   `json:"duration_min,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MovieRepo provides movie catalog persistence.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

// Create inserts a movie and populates its ID.
func (r *MovieRepo) Create(ctx context.Context, m *Movie) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO movies (title, description, poster_url, duration_min) VALUES (?,?,?,?)",
		m.Title, m.Description, m.PosterURL, m.DurationMin)
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

// GetByID fetches a single movie or ErrMovieNotFound.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*Movie, error) {
	const q = `SELECT id, title, description, poster_url, duration_min, created_at, updated_at
	           FROM movies WHERE id = ?`
	var m Movie
	err := r.DB.QueryRowContext(ctx, q, id).
		Scan(&m.ID, &m.Title, &m.Description, &m.PosterURL, &m.DurationMin, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all movies ordered by title.
func (r *MovieRepo) List(ctx context.Context) ([]Movie, error) {
	const q = `SELECT id, title, description, poster_url, duration_min, created_at, updated_at
	           FROM movies ORDER BY title, id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Movie
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.PosterURL, &m.DurationMin, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update rewrites the mutable movie fields. ErrMovieNotFound when the
// id does not exist.
func (r *MovieRepo) Update(ctx context.Context, m *Movie) error {
	const q = `UPDATE movies
	           SET title = ?, description = ?, poster_url = ?, duration_min = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.DB.ExecContext(ctx, q, m.Title, m.Description, m.PosterURL, m.DurationMin, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes a movie together with its seat inventory in a single
// transaction, so a failure part way through never leaves orphaned seat
// rows. Booking rows are kept as audit records. ErrMovieNotFound when
// the id does not exist; nothing is deleted in that case.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM seats WHERE movie_id = ?", id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
