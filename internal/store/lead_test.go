package store

import (
	"testing"
	"time"

	"github.com/ewhitmore/marquee/internal/model"
)

func TestLeadCreateDefaults(t *testing.T) {
	db := openTestDB(t)
	s := NewLeadStore(db)

	lead, err := s.Create("Riley", "Chen", "riley@example.com", "555-0102", "Asked about barn venues")
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}
	if lead.Status != model.LeadNew {
		t.Errorf("status = %q, want %q", lead.Status, model.LeadNew)
	}

	today := time.Now().UTC().Format("2006-01-02")
	if got := lead.InquiryDate.Format("2006-01-02"); got != today {
		t.Errorf("inquiry date = %s, want %s", got, today)
	}
}

func TestLeadUpdateStatus(t *testing.T) {
	db := openTestDB(t)
	s := NewLeadStore(db)

	lead, err := s.Create("Riley", "Chen", "riley@example.com", "", "")
	if err != nil {
		t.Fatalf("create lead: %v", err)
	}

	updated, err := s.Update(lead.ID, lead.FirstName, lead.LastName, lead.Email, lead.PhoneNumber, model.LeadContacted, "Left voicemail")
	if err != nil {
		t.Fatalf("update lead: %v", err)
	}
	if updated.Status != model.LeadContacted {
		t.Errorf("status = %q, want %q", updated.Status, model.LeadContacted)
	}
	if updated.Notes != "Left voicemail" {
		t.Errorf("notes = %q, want %q", updated.Notes, "Left voicemail")
	}
}

func TestLeadEmailExists(t *testing.T) {
	db := openTestDB(t)
	s := NewLeadStore(db)

	if _, err := s.Create("Riley", "Chen", "riley@example.com", "", ""); err != nil {
		t.Fatalf("create lead: %v", err)
	}

	exists, err := s.EmailExists("riley@example.com", 0)
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Error("expected email to exist")
	}
}
