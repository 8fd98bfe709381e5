package store

import (
	"database/sql"
	"fmt"
)

// Counts are the banner numbers shared across pages. They are recomputed per
// request; the queries are cheap enough that no caching is warranted.
type Counts struct {
	Leads        int64 `json:"leads"`
	Events       int64 `json:"events"`
	UnreadEmails int64 `json:"unread_emails"`
}

type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) Counts() (Counts, error) {
	var c Counts

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM leads`).Scan(&c.Leads); err != nil {
		return Counts{}, fmt.Errorf("count leads: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&c.Events); err != nil {
		return Counts{}, fmt.Errorf("count events: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM emails WHERE is_read = 0`).Scan(&c.UnreadEmails); err != nil {
		return Counts{}, fmt.Errorf("count unread emails: %w", err)
	}
	return c, nil
}
