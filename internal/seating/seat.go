// Package seating implements the seat allocation core: the hall layout
// generator, the group constraint model, the deterministic allocation
// engine and the selection validator. Everything in this package is a
// pure computation over an in-memory snapshot; persistence and HTTP
// concerns live elsewhere.
package seating

import (
	"strconv"
	"strings"
)

// Seat statuses. A seat is created AVAILABLE or BROKEN by the layout
// generator; booking commit moves it to BOOKED and cancellation back to
// AVAILABLE. BROKEN is permanent for the lifetime of the inventory.
const (
	StatusAvailable = "AVAILABLE"
	StatusBooked    = "BOOKED"
	StatusBroken    = "BROKEN"
)

// Seat categories. Assigned once at layout generation and immutable
// afterwards.
const (
	CategoryRegular       = "REGULAR"
	CategoryVIP           = "VIP"
	CategoryAccessible    = "ACCESSIBLE"
	CategorySenior        = "SENIOR"
	CategoryAgeRestricted = "AGE_RESTRICTED"
)

// Seat describes a single seat in a hall. The ID is the row label
// concatenated with the 1-based seat number (e.g. "A1", "D10") and is
// unique within a hall instance. MinAge is zero unless the seat sits in
// an age-restricted zone.
type Seat struct {
	ID       string `json:"id"`
	Row      string `json:"row"`
	Number   int    `json:"number"`
	Status   string `json:"status"`
	Category string `json:"category"`
	MinAge   int    `json:"min_age,omitempty"`
}

// SeatID builds the canonical seat identifier from a row label and a
// 1-based seat number.
func SeatID(row string, number int) string {
	return row + strconv.Itoa(number)
}

// RowLabel converts a zero-based row index into an alphabetical label:
// 0 -> A, 1 -> B, ..., 25 -> Z, 26 -> AA.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// RowIndex converts a row label back into its zero-based index. The
// second return value is false when the label contains anything other
// than ASCII letters.
func RowIndex(label string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}
