package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cineseat/movie-hall-booking/internal/seating"
)

// SeatRepo persists the per-movie seat inventory. Each row carries the
// attributes the seating core needs: label, position, category, age
// restriction and mutable status.
type SeatRepo struct{ DB *sql.DB }

func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{DB: db} }

// CreateBulk inserts a generated layout for a movie in one statement.
func (r *SeatRepo) CreateBulk(ctx context.Context, movieID uint64, seats []seating.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("INSERT INTO seats (movie_id, seat_label, row_label, seat_number, category, min_age, status) VALUES ")
	args := make([]interface{}, 0, len(seats)*7)
	for i, s := range seats {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?, ?)")
		args = append(args, movieID, s.ID, s.Row, s.Number, s.Category, s.MinAge, s.Status)
	}
	_, err := r.DB.ExecContext(ctx, b.String(), args...)
	return err
}

// GetByMovie loads the full inventory snapshot, ordered for the seating
// core.
func (r *SeatRepo) GetByMovie(ctx context.Context, movieID uint64) ([]seating.Seat, error) {
	const q = `SELECT seat_label, row_label, seat_number, category, min_age, status
	           FROM seats
	           WHERE movie_id = ?
	           ORDER BY row_label, seat_number`
	rows, err := r.DB.QueryContext(ctx, q, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []seating.Seat
	for rows.Next() {
		var s seating.Seat
		if err := rows.Scan(&s.ID, &s.Row, &s.Number, &s.Category, &s.MinAge, &s.Status); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
