// Package booking validates candidate bookings against the records that
// already exist on the same resource (a venue, or the shared schedule) on the
// same day. It is pure: callers load the comparison set and run validation
// inside the same transaction as the write.
package booking

import (
	"errors"
	"fmt"
	"time"
)

// ErrEndNotAfterStart is returned when a candidate's end is not strictly
// after its start. It is checked before any overlap scan.
var ErrEndNotAfterStart = errors.New("end time must be after start time")

// Span is one booked time range on a resource/day.
type Span struct {
	ID    string
	Start time.Time
	End   time.Time
}

// ConflictError reports the existing span a candidate collides with.
type ConflictError struct {
	With Span
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlaps existing booking %s (%s to %s)",
		e.With.ID,
		e.With.Start.Format(time.RFC3339),
		e.With.End.Format(time.RFC3339))
}

// Overlaps reports whether the half-open ranges [s1, e1) and [s2, e2)
// intersect: s1 < e2 AND s2 < e1. Touching boundaries do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Validate checks a candidate span against the existing spans on the same
// resource and day. Spans sharing the candidate's ID are skipped so that
// updating a record never conflicts with itself.
func Validate(candidate Span, existing []Span) error {
	if !candidate.End.After(candidate.Start) {
		return ErrEndNotAfterStart
	}

	for _, s := range existing {
		if s.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate.Start, candidate.End, s.Start, s.End) {
			return &ConflictError{With: s}
		}
	}
	return nil
}
