package models

import "time"

// DefaultServiceMinutes is the duration assumed for a service that has no
// explicit duration configured.
const DefaultServiceMinutes = 30

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// Overlaps reports whether two half-open intervals share at least one
// instant: a.Start < b.End && b.Start < a.End.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// ClaimMinutes returns every minute bucket (unix minutes) the interval
// touches. Minute-aligned intervals map exactly onto their buckets;
// non-aligned boundaries are rounded outward, so the claim set is never
// smaller than the interval it protects.
func (iv Interval) ClaimMinutes() []int64 {
	first := iv.Start.Unix() / 60
	last := (iv.End.Unix()+59)/60 - 1
	if last < first {
		last = first
	}
	minutes := make([]int64, 0, last-first+1)
	for m := first; m <= last; m++ {
		minutes = append(minutes, m)
	}
	return minutes
}

// Claim kinds recorded on slot claims.
const (
	ClaimKindReservation = "reservation"
	ClaimKindBlockedSlot = "blocked_slot"
)

// SlotClaim pins a single minute bucket of a personnel's calendar. A unique
// index on (personnel_id, minute) guarantees that two committed intervals
// for the same personnel can never overlap, regardless of how the
// conflict-check queries interleave.
type SlotClaim struct {
	PersonnelID string `bson:"personnel_id"`
	Minute      int64  `bson:"minute"`
	RefID       string `bson:"ref_id"`
	RefKind     string `bson:"ref_kind"`
}

// ClaimsFor expands an interval into the slot claims guarding it.
func ClaimsFor(personnelID, refID, refKind string, iv Interval) []SlotClaim {
	minutes := iv.ClaimMinutes()
	claims := make([]SlotClaim, 0, len(minutes))
	for _, m := range minutes {
		claims = append(claims, SlotClaim{
			PersonnelID: personnelID,
			Minute:      m,
			RefID:       refID,
			RefKind:     refKind,
		})
	}
	return claims
}
