package seating

import (
	"errors"
	"fmt"
)

// Group size bounds. Larger parties must book through the box office and
// are rejected outright.
const (
	MinGroupSize = 1
	MaxGroupSize = 7
)

// ErrInvalidConstraints is returned when a booking request is malformed
// before any allocation runs.
var ErrInvalidConstraints = errors.New("invalid constraints")

// GroupConstraints captures one booking attempt's requirements. The
// accessibility requirement is hard; VIP seating is only a preference.
// AgeOfYoungestMember is nil when the group declares no minor, in which
// case age restrictions are treated as satisfied.
type GroupConstraints struct {
	GroupSize                 int  `json:"group_size"`
	RequiresAccessibleSeating bool `json:"requires_accessible_seating"`
	WantsVIPSeating           bool `json:"wants_vip_seating"`
	AgeOfYoungestMember       *int `json:"age_of_youngest_member,omitempty"`
	SeniorCitizen             bool `json:"senior_citizen"`
}

// Validate rejects constraint sets the allocator will not accept.
func (gc GroupConstraints) Validate() error {
	if gc.GroupSize < MinGroupSize || gc.GroupSize > MaxGroupSize {
		return fmt.Errorf("%w: group size must be between %d and %d, got %d",
			ErrInvalidConstraints, MinGroupSize, MaxGroupSize, gc.GroupSize)
	}
	if gc.AgeOfYoungestMember != nil && *gc.AgeOfYoungestMember < 0 {
		return fmt.Errorf("%w: age of youngest member cannot be negative", ErrInvalidConstraints)
	}
	return nil
}

// Reasons a seat fails the hard constraints. The allocator aggregates
// them into failure messages; the validator names them per seat.
const (
	reasonBooked        = "booked"
	reasonBroken        = "out of service"
	reasonNotAccessible = "not accessible"
	reasonAgeRestricted = "age-restricted"
)

// disqualifies applies the hard constraints of the allocation rules to a
// single seat. It returns the reason the seat is excluded, or ok=true
// when the seat is eligible for this group. Both the allocator and the
// selection validator go through this predicate, so the two can never
// disagree on a verdict.
func (gc GroupConstraints) disqualifies(s Seat) (reason string, ok bool) {
	switch s.Status {
	case StatusBroken:
		return reasonBroken, false
	case StatusBooked:
		return reasonBooked, false
	}
	if gc.RequiresAccessibleSeating && s.Category != CategoryAccessible {
		return reasonNotAccessible, false
	}
	// A senior citizen in the group authorizes the whole group, minors
	// included, to sit in an age-restricted zone.
	if s.MinAge > 0 && !gc.SeniorCitizen &&
		gc.AgeOfYoungestMember != nil && *gc.AgeOfYoungestMember < s.MinAge {
		return reasonAgeRestricted, false
	}
	return "", true
}
