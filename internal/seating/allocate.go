package seating

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInsufficientSeats is returned when the hard constraints leave fewer
// eligible seats than the group needs. The wrapped message states which
// constraints caused the exclusions.
var ErrInsufficientSeats = errors.New("not enough eligible seats")

// Allocation is a successful proposal: exactly GroupSize seat ids in
// seating order, a human-readable message, and the number of distinct
// locations the group was placed in (1 means everyone sits together).
type Allocation struct {
	SeatIDs   []string `json:"seat_ids"`
	Message   string   `json:"message"`
	Locations int      `json:"locations"`
}

// run is a maximal block of consecutive eligible seats within one row.
type run struct {
	rowIdx int
	seats  []Seat
}

func (r run) start() int { return r.seats[0].Number }
func (r run) len() int   { return len(r.seats) }

func (r run) allVIP() bool {
	for _, s := range r.seats {
		if s.Category != CategoryVIP {
			return false
		}
	}
	return true
}

// label renders a run slice as "A3" or "A3-A5" for messages.
func label(seats []Seat) string {
	if len(seats) == 1 {
		return seats[0].ID
	}
	return seats[0].ID + "-" + seats[len(seats)-1].ID
}

// Allocate proposes a seat set of exactly gc.GroupSize seats from the
// inventory, or explains why none exists. The result is deterministic:
// identical inputs always produce the identical proposal.
//
// Hard constraints (availability, accessibility, age restriction) filter
// the candidate set; VIP seating and contiguity only rank among the
// survivors. A single row block is preferred; when none fits the group
// it is split across the largest available blocks, largest first; the
// split result is re-checked against the hard constraints exactly like
// a user-edited selection would be.
func Allocate(inv *Inventory, gc GroupConstraints) (Allocation, error) {
	if err := gc.Validate(); err != nil {
		return Allocation{}, err
	}

	eligible := make([]Seat, 0, inv.Size())
	excluded := map[string]int{}
	for _, s := range inv.Seats() {
		if reason, ok := gc.disqualifies(s); !ok {
			excluded[reason]++
		} else {
			eligible = append(eligible, s)
		}
	}

	if len(eligible) < gc.GroupSize {
		return Allocation{}, fmt.Errorf("%w: only %d of %d required seats are eligible (%s)",
			ErrInsufficientSeats, len(eligible), gc.GroupSize, summarize(excluded))
	}

	if gc.GroupSize == 1 {
		return allocateSolo(inv, eligible, gc), nil
	}

	runs := findRuns(eligible)

	// A single row block that fits the whole group wins. With a VIP
	// preference, blocks made purely of VIP seats are considered first;
	// ties break on smallest row, then lowest starting number.
	if best, ok := pickRun(runs, gc); ok {
		chosen := best.seats[:gc.GroupSize]
		ids := seatIDs(chosen)
		kind := ""
		if gc.WantsVIPSeating && best.allVIP() {
			kind = "VIP "
		}
		return Allocation{
			SeatIDs:   ids,
			Message:   fmt.Sprintf("Allocated %d %sseats together in row %s (%s).", gc.GroupSize, kind, chosen[0].Row, label(chosen)),
			Locations: 1,
		}, nil
	}

	// No row holds the whole group: split across the largest blocks,
	// consuming the largest first so the group stays in as few places
	// as possible.
	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].len() != runs[j].len() {
			return runs[i].len() > runs[j].len()
		}
		if runs[i].rowIdx != runs[j].rowIdx {
			return runs[i].rowIdx < runs[j].rowIdx
		}
		return runs[i].start() < runs[j].start()
	})

	var picked []Seat
	var segments []string
	need := gc.GroupSize
	for _, r := range runs {
		if need == 0 {
			break
		}
		take := r.seats
		if len(take) > need {
			take = take[:need]
		}
		picked = append(picked, take...)
		segments = append(segments, label(take))
		need -= len(take)
	}
	if need > 0 {
		return Allocation{}, fmt.Errorf("%w: %d more seat(s) needed than the hall can offer (%s)",
			ErrInsufficientSeats, need, summarize(excluded))
	}

	ids := seatIDs(picked)
	if err := ValidateSelection(inv, gc, ids); err != nil {
		return Allocation{}, err
	}
	return Allocation{
		SeatIDs: ids,
		Message: fmt.Sprintf("No block of %d adjacent seats is free: the group is split across %d locations (%s).",
			gc.GroupSize, len(segments), strings.Join(segments, ", ")),
		Locations: len(segments),
	}, nil
}

// allocateSolo places a lone attendee. The VIP preference applies here
// like it does to larger groups: with the flag set the scan covers VIP
// seats first and widens only when none is free. Seats at a row
// boundary or next to another free seat rank first; a seat wedged
// directly between two already-booked seats is taken only when nothing
// better exists.
func allocateSolo(inv *Inventory, eligible []Seat, gc GroupConstraints) Allocation {
	candidates := eligible
	kind := ""
	if gc.WantsVIPSeating {
		var vip []Seat
		for _, s := range eligible {
			if s.Category == CategoryVIP {
				vip = append(vip, s)
			}
		}
		if len(vip) > 0 {
			candidates = vip
			kind = "VIP "
		}
	}

	best := candidates[0]
	bestScore := soloScore(inv, best)
	for _, s := range candidates[1:] {
		if sc := soloScore(inv, s); sc < bestScore {
			best, bestScore = s, sc
		}
	}
	msg := fmt.Sprintf("Allocated %sseat %s.", kind, best.ID)
	if bestScore > 0 {
		msg = fmt.Sprintf("Allocated %sseat %s; it sits between two booked seats, but no freer spot matches your requirements.", kind, best.ID)
	}
	return Allocation{SeatIDs: []string{best.ID}, Message: msg, Locations: 1}
}

// soloScore is 0 for a comfortable solo seat and 1 for a seat booked on
// both sides. A missing neighbour (hall edge or aisle) counts as
// comfortable.
func soloScore(inv *Inventory, s Seat) int {
	left, leftOK := inv.seatAt(s.Row, s.Number-1)
	right, rightOK := inv.seatAt(s.Row, s.Number+1)
	if leftOK && left.Status == StatusBooked && rightOK && right.Status == StatusBooked {
		return 1
	}
	return 0
}

// findRuns splits the eligible seats (already in row/number order) into
// maximal consecutive blocks per row.
func findRuns(eligible []Seat) []run {
	var runs []run
	var cur []Seat
	flush := func() {
		if len(cur) > 0 {
			idx, _ := RowIndex(cur[0].Row)
			runs = append(runs, run{rowIdx: idx, seats: cur})
			cur = nil
		}
	}
	for _, s := range eligible {
		if len(cur) > 0 {
			prev := cur[len(cur)-1]
			if prev.Row != s.Row || prev.Number+1 != s.Number {
				flush()
			}
		}
		cur = append(cur, s)
	}
	flush()
	return runs
}

// pickRun selects the best single-row block that fits the whole group.
func pickRun(runs []run, gc GroupConstraints) (run, bool) {
	better := func(a, b run) bool {
		if a.rowIdx != b.rowIdx {
			return a.rowIdx < b.rowIdx
		}
		return a.start() < b.start()
	}
	pick := func(vipOnly bool) (run, bool) {
		var best run
		found := false
		for _, r := range runs {
			if r.len() < gc.GroupSize {
				continue
			}
			if vipOnly && !r.allVIP() {
				continue
			}
			if !found || better(r, best) {
				best, found = r, true
			}
		}
		return best, found
	}
	if gc.WantsVIPSeating {
		if r, ok := pick(true); ok {
			return r, true
		}
	}
	return pick(false)
}

func seatIDs(seats []Seat) []string {
	ids := make([]string, len(seats))
	for i, s := range seats {
		ids[i] = s.ID
	}
	return ids
}

// summarize renders exclusion counts in a fixed reason order so failure
// messages are stable.
func summarize(excluded map[string]int) string {
	if len(excluded) == 0 {
		return "the hall has fewer seats than the group"
	}
	var parts []string
	for _, reason := range []string{reasonBooked, reasonBroken, reasonNotAccessible, reasonAgeRestricted} {
		if n := excluded[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, reason))
		}
	}
	return strings.Join(parts, ", ")
}
