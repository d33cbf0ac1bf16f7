// Package booking owns the commit and cancellation of seat bookings.
// It re-validates every selection server-side against the seating core
// and drives the persistence collaborator through the Store contract,
// so the concurrency rules (first committer wins, idempotent cancel)
// live in one place regardless of the backing database.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/cineseat/movie-hall-booking/internal/seating"
)

// ErrConflict signals that a commit lost the race for at least one seat.
// The user can always recover by re-requesting allocation against
// refreshed inventory.
var ErrConflict = errors.New("booking conflict: one or more seats were just booked by someone else")

// ErrNotFound is returned by Store lookups for unknown bookings and by
// the service when a movie has no seat inventory.
var ErrNotFound = errors.New("booking not found")

// ErrForbidden is returned when a user tries to cancel a booking they do
// not own.
var ErrForbidden = errors.New("forbidden")

// Record is a persisted booking. The originating constraints are kept
// for audit and display; MovieTitle is pass-through metadata from the
// movie catalog and is never validated here.
type Record struct {
	ID          uint64                   `json:"id"`
	MovieID     uint64                   `json:"movie_id"`
	MovieTitle  string                   `json:"movie_title"`
	UserID      uint64                   `json:"user_id"`
	GroupSize   int                      `json:"group_size"`
	SeatIDs     []string                 `json:"seat_ids"`
	Constraints seating.GroupConstraints `json:"constraints"`
	CreatedAt   time.Time                `json:"created_at"`
}

// Store is the persistence collaborator contract. Implementations must
// make BookSeats atomic: the whole seat set transitions
// AVAILABLE -> BOOKED together with the booking insert, or nothing
// changes and ErrConflict is returned. CancelBooking is the mirror
// operation and must return ErrNotFound when the booking no longer
// exists so Cancel can stay idempotent.
type Store interface {
	SeatsForMovie(ctx context.Context, movieID uint64) ([]seating.Seat, error)
	BookSeats(ctx context.Context, rec *Record) error
	GetBooking(ctx context.Context, id uint64) (*Record, error)
	CancelBooking(ctx context.Context, rec *Record) error
	ListByUser(ctx context.Context, userID uint64) ([]Record, error)
	ListAll(ctx context.Context) ([]Record, error)
}

// Publisher emits booking lifecycle events. Publishing failures never
// fail the request; the service logs and moves on.
type Publisher interface {
	BookingConfirmed(ctx context.Context, rec Record) error
	BookingCancelled(ctx context.Context, rec Record) error
}
