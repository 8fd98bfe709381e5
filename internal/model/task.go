package model

import "time"

type Task struct {
	ID          int64     `json:"id"`
	EventID     string    `json:"event_id"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	IsCompleted bool      `json:"is_completed"`
}

// IsOverdue reports whether an incomplete task's due date has passed.
func (t Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.DueDate.Before(today)
}
