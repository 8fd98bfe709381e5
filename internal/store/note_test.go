package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ewhitmore/marquee/internal/model"
)

func testEvent(t *testing.T, db *sql.DB) *model.Event {
	t.Helper()
	client := testClient(t, db)
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	event, err := NewEventStore(db).Create("Gala", client.ID, day,
		day.Add(9*time.Hour), day.Add(12*time.Hour), "Rose Hall", "", model.EventPlanned)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func TestNoteCreateListUpdate(t *testing.T) {
	db := openTestDB(t)
	s := NewNoteStore(db)
	event := testEvent(t, db)

	note, err := s.Create(event.ID, "Client prefers lilies")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.EventID != event.ID {
		t.Errorf("event_id = %q, want %q", note.EventID, event.ID)
	}

	if _, err := s.Create(event.ID, "Band confirmed"); err != nil {
		t.Fatalf("create note: %v", err)
	}

	notes, err := s.ListByEvent(event.ID)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("got %d notes, want 2", len(notes))
	}

	updated, err := s.Update(note.ID, "Client prefers peonies")
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	if updated.Content != "Client prefers peonies" {
		t.Errorf("content = %q, want updated text", updated.Content)
	}
}

func TestNoteDelete(t *testing.T) {
	db := openTestDB(t)
	s := NewNoteStore(db)
	event := testEvent(t, db)

	note, err := s.Create(event.ID, "temp")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if err := s.Delete(note.ID); err != nil {
		t.Fatalf("delete note: %v", err)
	}

	got, err := s.GetByID(note.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}
