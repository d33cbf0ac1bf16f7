package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSelectionAccepts(t *testing.T) {
	inv := NewInventory(freshHall(t))

	err := ValidateSelection(inv, GroupConstraints{GroupSize: 3}, []string{"B2", "B3", "B4"})
	assert.NoError(t, err)

	// Adjacency is never required of a manual selection.
	err = ValidateSelection(inv, GroupConstraints{GroupSize: 3}, []string{"A1", "C5", "F10"})
	assert.NoError(t, err)

	// Validation is read-only, so the same selection passes again.
	err = ValidateSelection(inv, GroupConstraints{GroupSize: 3}, []string{"A1", "C5", "F10"})
	assert.NoError(t, err)
}

func TestValidateSelectionCount(t *testing.T) {
	inv := NewInventory(freshHall(t))
	gc := GroupConstraints{GroupSize: 3}

	err := ValidateSelection(inv, gc, []string{"A1", "A2"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "too few")

	err = ValidateSelection(inv, gc, []string{"A1", "A2", "A3", "A4"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "too many")

	err = ValidateSelection(inv, gc, []string{"A1", "A2", "A1"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "more than once")
}

func TestValidateSelectionUnknownSeat(t *testing.T) {
	inv := NewInventory(freshHall(t))

	err := ValidateSelection(inv, GroupConstraints{GroupSize: 2}, []string{"A1", "Z99"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "Z99")
	assert.Contains(t, err.Error(), "does not exist")
}

func TestValidateSelectionSeatState(t *testing.T) {
	seats := freshHall(t)
	setStatus(t, seats, StatusBooked, "B2")
	setStatus(t, seats, StatusBroken, "B3")
	inv := NewInventory(seats)
	gc := GroupConstraints{GroupSize: 2}

	err := ValidateSelection(inv, gc, []string{"B1", "B2"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "seat B2 is already booked")

	err = ValidateSelection(inv, gc, []string{"B1", "B3"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "seat B3 is out of service")
}

func TestValidateSelectionAccessibility(t *testing.T) {
	inv := NewInventory(freshHall(t))
	gc := GroupConstraints{GroupSize: 2, RequiresAccessibleSeating: true}

	err := ValidateSelection(inv, gc, []string{"A1", "A10"})
	assert.NoError(t, err)

	err = ValidateSelection(inv, gc, []string{"A1", "A2"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "seat A2 is not accessible")
}

func TestValidateSelectionAgeRestriction(t *testing.T) {
	inv := NewInventory(freshHall(t))

	gc := GroupConstraints{GroupSize: 2, AgeOfYoungestMember: intp(12)}
	err := ValidateSelection(inv, gc, []string{"G1", "G2"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "seat G1 is restricted to ages 15 and up")
	assert.Contains(t, err.Error(), "youngest group member is 12")

	// Old enough for row G, still too young for row H.
	gc.AgeOfYoungestMember = intp(16)
	assert.NoError(t, ValidateSelection(inv, gc, []string{"G1", "G2"}))
	err = ValidateSelection(inv, gc, []string{"H1", "H2"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "ages 18 and up")

	// A senior in the group lifts the restriction for everyone.
	gc = GroupConstraints{GroupSize: 2, AgeOfYoungestMember: intp(12), SeniorCitizen: true}
	assert.NoError(t, ValidateSelection(inv, gc, []string{"H1", "H2"}))

	// Without a declared minor the restriction does not apply.
	gc = GroupConstraints{GroupSize: 2}
	assert.NoError(t, ValidateSelection(inv, gc, []string{"H1", "H2"}))
}

func TestValidateSelectionReportsLowestSeatFirst(t *testing.T) {
	seats := freshHall(t)
	setStatus(t, seats, StatusBooked, "A4", "C2")
	inv := NewInventory(seats)
	gc := GroupConstraints{GroupSize: 2}

	// Both seats are booked; the verdict names the lowest one no matter
	// how the client ordered its selection.
	err := ValidateSelection(inv, gc, []string{"C2", "A4"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "seat A4")

	err = ValidateSelection(inv, gc, []string{"A4", "C2"})
	require.ErrorIs(t, err, ErrSelectionMismatch)
	assert.Contains(t, err.Error(), "seat A4")
}

func TestValidateSelectionInvalidConstraints(t *testing.T) {
	inv := NewInventory(freshHall(t))

	err := ValidateSelection(inv, GroupConstraints{GroupSize: 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidConstraints)
}

// Whatever the allocator proposes must pass validation unchanged, since
// both sides share the same hard-constraint predicate.
func TestAllocatorOutputAlwaysValidates(t *testing.T) {
	seats := freshHall(t)
	setStatus(t, seats, StatusBooked, "A1", "A2", "B5", "D3", "D4", "G1")
	setStatus(t, seats, StatusBroken, "C7", "E10")
	inv := NewInventory(seats)

	cases := []GroupConstraints{
		{GroupSize: 1},
		{GroupSize: 1, RequiresAccessibleSeating: true},
		{GroupSize: 3, WantsVIPSeating: true},
		{GroupSize: 5, AgeOfYoungestMember: intp(14)},
		{GroupSize: 7, AgeOfYoungestMember: intp(12), SeniorCitizen: true},
		{GroupSize: 6, WantsVIPSeating: true, AgeOfYoungestMember: intp(20)},
	}
	for _, gc := range cases {
		alloc, err := Allocate(inv, gc)
		require.NoError(t, err, "constraints %+v", gc)
		assert.NoError(t, ValidateSelection(inv, gc, alloc.SeatIDs), "constraints %+v", gc)
	}
}
