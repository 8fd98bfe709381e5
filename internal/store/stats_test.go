package store

import (
	"testing"
	"time"

	"github.com/ewhitmore/marquee/internal/model"
)

func TestStatsCounts(t *testing.T) {
	db := openTestDB(t)
	stats := NewStatsStore(db)

	// Empty database: everything zero.
	c, err := stats.Counts()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if c.Leads != 0 || c.Events != 0 || c.UnreadEmails != 0 {
		t.Errorf("counts = %+v, want all zero", c)
	}

	leads := NewLeadStore(db)
	if _, err := leads.Create("Riley", "Chen", "riley@example.com", "", ""); err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if _, err := leads.Create("Sam", "Park", "sam@example.com", "", ""); err != nil {
		t.Fatalf("create lead: %v", err)
	}

	client := testClient(t, db)
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	if _, err := NewEventStore(db).Create("Gala", client.ID, day,
		day.Add(9*time.Hour), day.Add(12*time.Hour), "Rose Hall", "", model.EventPlanned); err != nil {
		t.Fatalf("create event: %v", err)
	}

	emails := NewEmailStore(db)
	read, err := emails.Create("a@example.com", "", "Read one", "x")
	if err != nil {
		t.Fatalf("create email: %v", err)
	}
	if _, err := emails.MarkRead(read.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if _, err := emails.Create("b@example.com", "", "Unread one", "y"); err != nil {
		t.Fatalf("create email: %v", err)
	}

	c, err = stats.Counts()
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if c.Leads != 2 {
		t.Errorf("leads = %d, want 2", c.Leads)
	}
	if c.Events != 1 {
		t.Errorf("events = %d, want 1", c.Events)
	}
	if c.UnreadEmails != 1 {
		t.Errorf("unread emails = %d, want 1", c.UnreadEmails)
	}
}
