package seating

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSelectionMismatch is returned when a proposed seat selection
// violates a hard constraint. The wrapped message is the exact text the
// UI surfaces to the user.
var ErrSelectionMismatch = errors.New("selection mismatch")

// ValidateSelection is the final gate before a booking is committed. It
// checks a seat-id set, whether it came straight from the allocator or
// from a user editing the seat map, against the same hard constraints
// the allocator filters with. A nil return means the selection may be
// booked; any single violated seat fails the whole selection.
//
// The check is pure: re-running it on the same selection, constraints
// and inventory always yields the same verdict.
func ValidateSelection(inv *Inventory, gc GroupConstraints, seatIDs []string) error {
	if err := gc.Validate(); err != nil {
		return err
	}

	unique := make([]string, 0, len(seatIDs))
	seen := make(map[string]bool, len(seatIDs))
	for _, id := range seatIDs {
		if seen[id] {
			return fmt.Errorf("%w: seat %s is selected more than once", ErrSelectionMismatch, id)
		}
		seen[id] = true
		unique = append(unique, id)
	}

	if len(unique) != gc.GroupSize {
		kind := "too few"
		if len(unique) > gc.GroupSize {
			kind = "too many"
		}
		return fmt.Errorf("%w: %d seats selected for a group of %d (%s)",
			ErrSelectionMismatch, len(unique), gc.GroupSize, kind)
	}

	// Report violations in stable seating order, unknown ids first, so
	// the verdict text never depends on click order.
	sort.SliceStable(unique, func(i, j int) bool {
		a, aOK := inv.Seat(unique[i])
		b, bOK := inv.Seat(unique[j])
		if aOK != bOK {
			return !aOK
		}
		if !aOK {
			return unique[i] < unique[j]
		}
		if a.Row != b.Row {
			ai, _ := RowIndex(a.Row)
			bi, _ := RowIndex(b.Row)
			return ai < bi
		}
		return a.Number < b.Number
	})

	for _, id := range unique {
		s, ok := inv.Seat(id)
		if !ok {
			return fmt.Errorf("%w: seat %s does not exist in this hall", ErrSelectionMismatch, id)
		}
		reason, ok := gc.disqualifies(s)
		if ok {
			continue
		}
		switch reason {
		case reasonBooked:
			return fmt.Errorf("%w: seat %s is already booked", ErrSelectionMismatch, s.ID)
		case reasonBroken:
			return fmt.Errorf("%w: seat %s is out of service", ErrSelectionMismatch, s.ID)
		case reasonNotAccessible:
			return fmt.Errorf("%w: seat %s is not accessible but the group requires accessible seating", ErrSelectionMismatch, s.ID)
		case reasonAgeRestricted:
			return fmt.Errorf("%w: seat %s is restricted to ages %d and up; the youngest group member is %d",
				ErrSelectionMismatch, s.ID, s.MinAge, *gc.AgeOfYoungestMember)
		}
	}
	return nil
}
