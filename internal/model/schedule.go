package model

import "time"

// Schedule is a generic calendar slot: a day plus a clock-time range.
// Times are stored as HH:MM strings; the day carries no time component.
type Schedule struct {
	ID        int64     `json:"id"`
	Day       time.Time `json:"day"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Notes     string    `json:"notes"`
}
