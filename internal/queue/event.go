// Package queue defines the message payloads exchanged over the broker
// and the background consumer that turns them into an audit log.
package queue

// BookingConfirmedEvent is published when a booking commit succeeds. It
// carries enough detail for downstream consumers to log or notify
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64   `json:"booking_id"`
	UserID      uint64   `json:"user_id"`
	MovieID     uint64   `json:"movie_id"`
	MovieTitle  string   `json:"movie_title"`
	GroupSize   int      `json:"group_size"`
	SeatIDs     []string `json:"seats"`
	ConfirmedAt string   `json:"confirmed_at"`
}

// BookingCancelledEvent is published after an idempotent cancellation
// actually released seats.
type BookingCancelledEvent struct {
	BookingID   uint64   `json:"booking_id"`
	UserID      uint64   `json:"user_id"`
	MovieID     uint64   `json:"movie_id"`
	MovieTitle  string   `json:"movie_title"`
	SeatIDs     []string `json:"seats"`
	CancelledAt string   `json:"cancelled_at"`
}
