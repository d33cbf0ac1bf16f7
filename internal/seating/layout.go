package seating

import (
	"errors"
	"fmt"
	"math/rand"
)

// DefaultBrokenSeats is how many seats are marked out of service when a
// layout does not say otherwise.
const DefaultBrokenSeats = 5

// Coord addresses a single seat position by zero-based row and column.
type Coord struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// AgeRestrictedRow marks an entire row as restricted to patrons of at
// least MinAge years.
type AgeRestrictedRow struct {
	Row    int `json:"row"`
	MinAge int `json:"min_age"`
}

// LayoutConfig defines the static shape of a hall. It is immutable once
// constructed; Generate turns it into a seat inventory.
type LayoutConfig struct {
	Rows              int                `json:"rows"`
	SeatsPerRow       int                `json:"seats_per_row"`
	VIPRows           []int              `json:"vip_rows,omitempty"`
	AccessibleSeats   []Coord            `json:"accessible_seats,omitempty"`
	SeniorSeats       []Coord            `json:"senior_seats,omitempty"`
	AgeRestrictedRows []AgeRestrictedRow `json:"age_restricted_rows,omitempty"`
	// BrokenSeats is the number of randomly chosen out-of-service seats.
	// Zero means DefaultBrokenSeats; a negative value disables breakage.
	BrokenSeats int `json:"broken_seats,omitempty"`
}

// DefaultLayout returns the stock 8x10 hall: VIP rows D and E,
// accessible seats in the four corners, row G restricted to 15+ and row
// H to 18+.
func DefaultLayout() LayoutConfig {
	return LayoutConfig{
		Rows:        8,
		SeatsPerRow: 10,
		VIPRows:     []int{3, 4},
		AccessibleSeats: []Coord{
			{Row: 0, Seat: 0}, {Row: 0, Seat: 9},
			{Row: 7, Seat: 0}, {Row: 7, Seat: 9},
		},
		AgeRestrictedRows: []AgeRestrictedRow{
			{Row: 6, MinAge: 15},
			{Row: 7, MinAge: 18},
		},
	}
}

// brokenCount resolves the configured number of broken seats.
func (c LayoutConfig) brokenCount() int {
	if c.BrokenSeats < 0 {
		return 0
	}
	if c.BrokenSeats == 0 {
		return DefaultBrokenSeats
	}
	return c.BrokenSeats
}

// Validate checks that the layout describes a usable hall.
func (c LayoutConfig) Validate() error {
	if c.Rows < 1 || c.SeatsPerRow < 1 {
		return errors.New("layout must have at least one row and one seat per row")
	}
	if c.brokenCount() >= c.Rows*c.SeatsPerRow {
		return fmt.Errorf("layout of %d seats cannot have %d broken seats", c.Rows*c.SeatsPerRow, c.brokenCount())
	}
	for _, v := range c.VIPRows {
		if v < 0 || v >= c.Rows {
			return fmt.Errorf("vip row %d out of range", v)
		}
	}
	for _, a := range c.AccessibleSeats {
		if a.Row < 0 || a.Row >= c.Rows || a.Seat < 0 || a.Seat >= c.SeatsPerRow {
			return fmt.Errorf("accessible seat (%d,%d) out of range", a.Row, a.Seat)
		}
	}
	for _, s := range c.SeniorSeats {
		if s.Row < 0 || s.Row >= c.Rows || s.Seat < 0 || s.Seat >= c.SeatsPerRow {
			return fmt.Errorf("senior seat (%d,%d) out of range", s.Row, s.Seat)
		}
	}
	for _, ar := range c.AgeRestrictedRows {
		if ar.Row < 0 || ar.Row >= c.Rows {
			return fmt.Errorf("age-restricted row %d out of range", ar.Row)
		}
		if ar.MinAge < 1 {
			return fmt.Errorf("age-restricted row %d needs a positive minimum age", ar.Row)
		}
	}
	return nil
}

// Generate builds the full seat inventory for a hall. Every
// (row, column) combination yields exactly one seat. Category rules are
// applied in a fixed order, later rules overriding earlier ones:
// REGULAR, then VIP rows, then accessible seats, then senior seats, and
// finally age-restricted rows. Age restriction wins over everything so
// an age-restricted row is never silently treated as VIP or accessible.
// Broken seats are drawn without replacement from rng, which makes
// generation reproducible under a seeded source.
func Generate(cfg LayoutConfig, rng *rand.Rand) ([]Seat, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	vipRows := make(map[int]bool, len(cfg.VIPRows))
	for _, r := range cfg.VIPRows {
		vipRows[r] = true
	}
	accessible := make(map[Coord]bool, len(cfg.AccessibleSeats))
	for _, a := range cfg.AccessibleSeats {
		accessible[a] = true
	}
	senior := make(map[Coord]bool, len(cfg.SeniorSeats))
	for _, s := range cfg.SeniorSeats {
		senior[s] = true
	}
	minAgeByRow := make(map[int]int, len(cfg.AgeRestrictedRows))
	for _, ar := range cfg.AgeRestrictedRows {
		minAgeByRow[ar.Row] = ar.MinAge
	}

	total := cfg.Rows * cfg.SeatsPerRow
	broken := make(map[int]bool, cfg.brokenCount())
	for _, idx := range rng.Perm(total)[:cfg.brokenCount()] {
		broken[idx] = true
	}

	seats := make([]Seat, 0, total)
	for row := 0; row < cfg.Rows; row++ {
		label := RowLabel(row)
		for col := 0; col < cfg.SeatsPerRow; col++ {
			category := CategoryRegular
			minAge := 0
			if vipRows[row] {
				category = CategoryVIP
			}
			if accessible[Coord{Row: row, Seat: col}] {
				category = CategoryAccessible
			}
			if senior[Coord{Row: row, Seat: col}] {
				category = CategorySenior
			}
			if age, ok := minAgeByRow[row]; ok {
				category = CategoryAgeRestricted
				minAge = age
			}
			status := StatusAvailable
			if broken[row*cfg.SeatsPerRow+col] {
				status = StatusBroken
			}
			seats = append(seats, Seat{
				ID:       SeatID(label, col+1),
				Row:      label,
				Number:   col + 1,
				Status:   status,
				Category: category,
				MinAge:   minAge,
			})
		}
	}
	return seats, nil
}
