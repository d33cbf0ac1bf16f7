package seating

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultLayout(t *testing.T) {
	seats, err := Generate(DefaultLayout(), rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	require.Len(t, seats, 80)

	ids := make(map[string]bool, len(seats))
	broken := 0
	byID := make(map[string]Seat, len(seats))
	for _, s := range seats {
		assert.False(t, ids[s.ID], "duplicate seat id %s", s.ID)
		ids[s.ID] = true
		byID[s.ID] = s
		if s.Status == StatusBroken {
			broken++
		}
	}
	assert.Equal(t, DefaultBrokenSeats, broken)

	// Front corners are accessible.
	assert.Equal(t, CategoryAccessible, byID["A1"].Category)
	assert.Equal(t, CategoryAccessible, byID["A10"].Category)

	// Rows D and E are VIP.
	assert.Equal(t, CategoryVIP, byID["D1"].Category)
	assert.Equal(t, CategoryVIP, byID["E10"].Category)

	// Row G admits 15+, row H admits 18+.
	assert.Equal(t, CategoryAgeRestricted, byID["G5"].Category)
	assert.Equal(t, 15, byID["G5"].MinAge)
	assert.Equal(t, CategoryAgeRestricted, byID["H5"].Category)
	assert.Equal(t, 18, byID["H5"].MinAge)

	// Age restriction overrides the accessible corners in row H.
	assert.Equal(t, CategoryAgeRestricted, byID["H1"].Category)
	assert.Equal(t, 18, byID["H1"].MinAge)
	assert.Equal(t, CategoryAgeRestricted, byID["H10"].Category)
}

func TestGenerateReproducible(t *testing.T) {
	a, err := Generate(DefaultLayout(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	b, err := Generate(DefaultLayout(), rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Generate(DefaultLayout(), rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	assert.NotEqual(t, a, c, "different seeds should break different seats")
}

func TestGenerateBrokenSeatCount(t *testing.T) {
	cfg := DefaultLayout()
	cfg.BrokenSeats = -1
	seats, err := Generate(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	for _, s := range seats {
		assert.Equal(t, StatusAvailable, s.Status)
	}

	cfg.BrokenSeats = 12
	seats, err = Generate(cfg, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	broken := 0
	for _, s := range seats {
		if s.Status == StatusBroken {
			broken++
		}
	}
	assert.Equal(t, 12, broken)
}

func TestGenerateRejectsBadLayouts(t *testing.T) {
	_, err := Generate(LayoutConfig{Rows: 0, SeatsPerRow: 10}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)

	_, err = Generate(LayoutConfig{Rows: 1, SeatsPerRow: 4, BrokenSeats: 4}, rand.New(rand.NewSource(1)))
	assert.Error(t, err, "every seat broken leaves nothing to sell")

	_, err = Generate(LayoutConfig{Rows: 2, SeatsPerRow: 2, BrokenSeats: -1, VIPRows: []int{5}}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)

	_, err = Generate(LayoutConfig{
		Rows: 2, SeatsPerRow: 2, BrokenSeats: -1,
		AgeRestrictedRows: []AgeRestrictedRow{{Row: 1, MinAge: 0}},
	}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}

func TestRowLabelRoundTrip(t *testing.T) {
	cases := map[int]string{0: "A", 7: "H", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA"}
	for idx, want := range cases {
		assert.Equal(t, want, RowLabel(idx))
		got, ok := RowIndex(want)
		require.True(t, ok)
		assert.Equal(t, idx, got)
	}

	_, ok := RowIndex("")
	assert.False(t, ok)
	_, ok = RowIndex("A1")
	assert.False(t, ok)
}
