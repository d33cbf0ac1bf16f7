package booking

import (
	"context"
	"errors"
	"log"

	"github.com/cineseat/movie-hall-booking/internal/seating"
)

// Service wires the seating core to the persistence collaborator. All
// methods are synchronous request/response operations over the current
// inventory snapshot.
type Service struct {
	store Store
	pub   Publisher // optional; nil disables events
}

// NewService constructs a Service. The store must be non-nil.
func NewService(store Store, pub Publisher) *Service {
	if store == nil {
		panic("nil store passed to booking.NewService")
	}
	return &Service{store: store, pub: pub}
}

// Inventory loads the current seat snapshot for a movie. ErrNotFound is
// returned when the movie has no seats, which means it was never seeded
// with a hall layout.
func (s *Service) Inventory(ctx context.Context, movieID uint64) (*seating.Inventory, error) {
	seats, err := s.store.SeatsForMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if len(seats) == 0 {
		return nil, ErrNotFound
	}
	return seating.NewInventory(seats), nil
}

// Commit validates the selection against a fresh snapshot and books it.
// The client may have validated already; that result is only a UX hint
// and is never trusted. Between our validation and the store's
// conditional update another booking may win the seats, in which case
// the whole commit aborts with ErrConflict and no seat changes status.
func (s *Service) Commit(ctx context.Context, movieID uint64, movieTitle string, userID uint64,
	gc seating.GroupConstraints, seatIDs []string) (*Record, error) {

	inv, err := s.Inventory(ctx, movieID)
	if err != nil {
		return nil, err
	}
	if err := seating.ValidateSelection(inv, gc, seatIDs); err != nil {
		return nil, err
	}

	rec := &Record{
		MovieID:     movieID,
		MovieTitle:  movieTitle,
		UserID:      userID,
		GroupSize:   gc.GroupSize,
		SeatIDs:     seatIDs,
		Constraints: gc,
	}
	if err := s.store.BookSeats(ctx, rec); err != nil {
		return nil, err
	}

	if s.pub != nil {
		if err := s.pub.BookingConfirmed(ctx, *rec); err != nil {
			log.Printf("booking: publish confirmed event failed: %v", err)
		}
	}
	return rec, nil
}

// Cancel reverses a booking: the record is removed and its seats return
// to AVAILABLE. Cancelling a booking that no longer exists is a no-op,
// not an error, so repeated cancellations are safe. Only the owner may
// cancel, unless admin is set.
func (s *Service) Cancel(ctx context.Context, bookingID, userID uint64, admin bool) error {
	rec, err := s.store.GetBooking(ctx, bookingID)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !admin && rec.UserID != userID {
		return ErrForbidden
	}
	if err := s.store.CancelBooking(ctx, rec); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Lost a race with another cancel of the same booking.
			return nil
		}
		return err
	}
	if s.pub != nil {
		if err := s.pub.BookingCancelled(ctx, *rec); err != nil {
			log.Printf("booking: publish cancelled event failed: %v", err)
		}
	}
	return nil
}

// ListForUser returns the user's bookings, newest first.
func (s *Service) ListForUser(ctx context.Context, userID uint64) ([]Record, error) {
	return s.store.ListByUser(ctx, userID)
}

// ListAll returns every booking. Admin only; enforced by the caller.
func (s *Service) ListAll(ctx context.Context) ([]Record, error) {
	return s.store.ListAll(ctx)
}
