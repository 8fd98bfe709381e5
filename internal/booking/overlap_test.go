package booking

import (
	"errors"
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 6, 10, hour, min, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"partial overlap", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"contained", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"identical", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"touching end to start", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"touching start to end", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
		{"disjoint", at(9, 0), at(10, 0), at(14, 0), at(15, 0), false},
		{"zero-width candidate inside", at(10, 0), at(10, 0), at(9, 0), at(11, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.s1, tt.e1, tt.s2, tt.e2); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateRejectsOverlap(t *testing.T) {
	existing := []Span{{ID: "1", Start: at(9, 0), End: at(10, 0)}}

	err := Validate(Span{ID: "2", Start: at(9, 30), End: at(10, 30)}, existing)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if conflict.With.ID != "1" {
		t.Errorf("conflicting ID = %q, want %q", conflict.With.ID, "1")
	}
}

func TestValidateAcceptsTouchingBoundary(t *testing.T) {
	existing := []Span{{ID: "1", Start: at(9, 0), End: at(10, 0)}}

	if err := Validate(Span{ID: "2", Start: at(10, 0), End: at(11, 0)}, existing); err != nil {
		t.Errorf("touching boundary rejected: %v", err)
	}
}

func TestValidateMalformedRange(t *testing.T) {
	// End before start fails before any overlap scan runs.
	existing := []Span{{ID: "1", Start: at(9, 0), End: at(10, 0)}}

	err := Validate(Span{ID: "2", Start: at(11, 0), End: at(10, 0)}, existing)
	if !errors.Is(err, ErrEndNotAfterStart) {
		t.Fatalf("err = %v, want ErrEndNotAfterStart", err)
	}

	// Zero-width is also malformed: end must be strictly after start.
	err = Validate(Span{ID: "2", Start: at(10, 0), End: at(10, 0)}, nil)
	if !errors.Is(err, ErrEndNotAfterStart) {
		t.Fatalf("err = %v, want ErrEndNotAfterStart", err)
	}
}

func TestValidateExcludesSelf(t *testing.T) {
	existing := []Span{{ID: "7", Start: at(9, 0), End: at(10, 0)}}

	// Re-saving a record with an unchanged range must not self-conflict.
	if err := Validate(Span{ID: "7", Start: at(9, 0), End: at(10, 0)}, existing); err != nil {
		t.Errorf("self-update rejected: %v", err)
	}

	// Moving within its own old slot is fine too.
	if err := Validate(Span{ID: "7", Start: at(9, 15), End: at(9, 45)}, existing); err != nil {
		t.Errorf("self-update with shifted range rejected: %v", err)
	}
}

func TestValidateEmptyComparisonSet(t *testing.T) {
	if err := Validate(Span{ID: "1", Start: at(9, 0), End: at(10, 0)}, nil); err != nil {
		t.Errorf("validate with no existing spans: %v", err)
	}
}

func TestValidateReportsFirstConflict(t *testing.T) {
	existing := []Span{
		{ID: "1", Start: at(8, 0), End: at(9, 0)},
		{ID: "2", Start: at(9, 30), End: at(10, 0)},
		{ID: "3", Start: at(10, 30), End: at(11, 0)},
	}

	err := Validate(Span{ID: "9", Start: at(9, 45), End: at(10, 45)}, existing)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if conflict.With.ID != "2" {
		t.Errorf("conflicting ID = %q, want %q", conflict.With.ID, "2")
	}
}
