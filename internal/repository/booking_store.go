package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cineseat/movie-hall-booking/internal/booking"
	"github.com/cineseat/movie-hall-booking/internal/seating"
)

// BookingStore implements booking.Store on MySQL. Seat transitions are
// conditional updates inside a transaction: a commit only succeeds when
// every selected seat is still AVAILABLE at update time, so of two
// concurrent commits over overlapping seats exactly one wins.
type BookingStore struct {
	DB    *sql.DB
	Seats *SeatRepo
}

func NewBookingStore(db *sql.DB, seats *SeatRepo) *BookingStore {
	return &BookingStore{DB: db, Seats: seats}
}

// SeatsForMovie exposes the seat snapshot through the booking contract.
func (s *BookingStore) SeatsForMovie(ctx context.Context, movieID uint64) ([]seating.Seat, error) {
	return s.Seats.GetByMovie(ctx, movieID)
}

// BookSeats transitions the selection AVAILABLE -> BOOKED and inserts
// the booking record in one transaction. When the conditional update
// touches fewer rows than the selection has seats, another booking got
// there first: the transaction rolls back untouched and
// booking.ErrConflict is returned.
func (s *BookingStore) BookSeats(ctx context.Context, rec *booking.Record) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	n, err := transitionSeatsTx(ctx, tx, rec.MovieID, rec.SeatIDs, seating.StatusAvailable, seating.StatusBooked)
	if err != nil {
		return err
	}
	if n != int64(len(rec.SeatIDs)) {
		return booking.ErrConflict
	}

	seatsJSON, err := json.Marshal(rec.SeatIDs)
	if err != nil {
		return err
	}
	constraintsJSON, err := json.Marshal(rec.Constraints)
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (movie_id, movie_title, user_id, group_size, seat_ids, constraints)
		 VALUES (?,?,?,?,?,?)`,
		rec.MovieID, rec.MovieTitle, rec.UserID, rec.GroupSize, seatsJSON, constraintsJSON)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}

	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM bookings WHERE id = ?", id).Scan(&rec.CreatedAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	rec.ID = uint64(id)
	return nil
}

// GetBooking loads a booking or booking.ErrNotFound.
func (s *BookingStore) GetBooking(ctx context.Context, id uint64) (*booking.Record, error) {
	const q = `SELECT id, movie_id, movie_title, user_id, group_size, seat_ids, constraints, created_at
	           FROM bookings WHERE id = ?`
	rec, err := scanBooking(s.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// CancelBooking deletes the record and releases its seats back to
// AVAILABLE in one transaction. booking.ErrNotFound when the record was
// already gone, which the service treats as an idempotent success.
func (s *BookingStore) CancelBooking(ctx context.Context, rec *booking.Record) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", rec.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return booking.ErrNotFound
	}
	if _, err := transitionSeatsTx(ctx, tx, rec.MovieID, rec.SeatIDs, seating.StatusBooked, seating.StatusAvailable); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// ListByUser returns a user's bookings, newest first.
func (s *BookingStore) ListByUser(ctx context.Context, userID uint64) ([]booking.Record, error) {
	const q = `SELECT id, movie_id, movie_title, user_id, group_size, seat_ids, constraints, created_at
	           FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return s.list(ctx, q, userID)
}

// ListAll returns every booking, newest first.
func (s *BookingStore) ListAll(ctx context.Context) ([]booking.Record, error) {
	const q = `SELECT id, movie_id, movie_title, user_id, group_size, seat_ids, constraints, created_at
	           FROM bookings ORDER BY created_at DESC, id DESC`
	return s.list(ctx, q)
}

func (s *BookingStore) list(ctx context.Context, q string, args ...interface{}) ([]booking.Record, error) {
	rows, err := s.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []booking.Record
	for rows.Next() {
		rec, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*booking.Record, error) {
	var (
		rec             booking.Record
		seatsJSON       []byte
		constraintsJSON []byte
	)
	if err := row.Scan(&rec.ID, &rec.MovieID, &rec.MovieTitle, &rec.UserID, &rec.GroupSize,
		&seatsJSON, &constraintsJSON, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(seatsJSON, &rec.SeatIDs); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(constraintsJSON, &rec.Constraints); err != nil {
		return nil, err
	}
	return &rec, nil
}

// transitionSeatsTx flips the status of the named seats only where the
// current status still matches from, and reports how many rows changed.
func transitionSeatsTx(ctx context.Context, tx *sql.Tx, movieID uint64, seatIDs []string, from, to string) (int64, error) {
	if len(seatIDs) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(seatIDs)), ",")
	q := "UPDATE seats SET status = ? WHERE movie_id = ? AND status = ? AND seat_label IN (" + placeholders + ")"
	args := make([]interface{}, 0, len(seatIDs)+3)
	args = append(args, to, movieID, from)
	for _, id := range seatIDs {
		args = append(args, id)
	}
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
