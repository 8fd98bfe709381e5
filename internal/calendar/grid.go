// Package calendar builds the month grid rendered by the calendar views: the
// full set of weeks covering a target month, padded with leading and trailing
// days from the adjacent months so every row is a complete Monday–Sunday week.
package calendar

import (
	"fmt"
	"time"

	"github.com/ewhitmore/marquee/internal/model"
)

const dayKeyFormat = "2006-01-02"

// InputError reports a year or month outside the supported range.
type InputError struct {
	Field string
	Value int
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %d", e.Field, e.Value)
}

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// Prev returns the preceding month, decrementing the year across January.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Next returns the following month, incrementing the year across December.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == time.December {
		return YearMonth{Year: ym.Year + 1, Month: time.January}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Grid is a fully materialized month view: every day from the Monday on or
// before the 1st through the Sunday on or after the last day of the month.
type Grid struct {
	Year  int
	Month time.Month
	Days  []time.Time
	Label string
	Prev  YearMonth
	Next  YearMonth
}

// BuildMonth computes the grid for (year, month). Months outside 1–12 and
// years outside 1–9999 fail with an InputError before any date arithmetic.
func BuildMonth(year, month int) (Grid, error) {
	if month < 1 || month > 12 {
		return Grid{}, &InputError{Field: "month", Value: month}
	}
	if year < 1 || year > 9999 {
		return Grid{}, &InputError{Field: "year", Value: year}
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -mondayIndex(first.Weekday()))
	end := last.AddDate(0, 0, 6-mondayIndex(last.Weekday()))

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	ym := YearMonth{Year: year, Month: time.Month(month)}
	return Grid{
		Year:  year,
		Month: time.Month(month),
		Days:  days,
		Label: first.Format("January 2006"),
		Prev:  ym.Prev(),
		Next:  ym.Next(),
	}, nil
}

// mondayIndex maps a weekday to its offset from Monday (Monday=0 ... Sunday=6).
func mondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// DayKey formats a date as the ISO day key used to bucket events.
func DayKey(t time.Time) string {
	return t.Format(dayKeyFormat)
}

// GroupByDay buckets events by their event-day key. Days without events are
// simply absent from the map; lookups for them yield an empty list.
func GroupByDay(events []model.Event) map[string][]model.Event {
	grouped := make(map[string][]model.Event, len(events))
	for _, e := range events {
		key := DayKey(e.EventDate)
		grouped[key] = append(grouped[key], e)
	}
	return grouped
}
