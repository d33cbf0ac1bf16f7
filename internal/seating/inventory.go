package seating

import "sort"

// Inventory is an immutable snapshot of a hall's seats, ordered by row
// then seat number. The allocator and the validator both read from it;
// nothing in this package mutates it after construction.
type Inventory struct {
	seats []Seat
	byID  map[string]int
}

// NewInventory copies and orders the given seats into a snapshot. Seats
// are sorted by row index (A before B before AA) and then by number so
// every downstream decision is independent of input order.
func NewInventory(seats []Seat) *Inventory {
	inv := &Inventory{
		seats: make([]Seat, len(seats)),
		byID:  make(map[string]int, len(seats)),
	}
	copy(inv.seats, seats)
	sort.SliceStable(inv.seats, func(i, j int) bool {
		a, b := inv.seats[i], inv.seats[j]
		if a.Row != b.Row {
			ai, _ := RowIndex(a.Row)
			bi, _ := RowIndex(b.Row)
			return ai < bi
		}
		return a.Number < b.Number
	})
	for i, s := range inv.seats {
		inv.byID[s.ID] = i
	}
	return inv
}

// Size reports the total number of seats in the snapshot.
func (inv *Inventory) Size() int { return len(inv.seats) }

// Seat looks up a seat by its id.
func (inv *Inventory) Seat(id string) (Seat, bool) {
	i, ok := inv.byID[id]
	if !ok {
		return Seat{}, false
	}
	return inv.seats[i], true
}

// Seats returns the ordered snapshot. Callers must treat it as
// read-only.
func (inv *Inventory) Seats() []Seat { return inv.seats }

// seatAt finds the seat at a (row, number) position, if the hall has
// one there.
func (inv *Inventory) seatAt(row string, number int) (Seat, bool) {
	return inv.Seat(SeatID(row, number))
}
