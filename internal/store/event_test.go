package store

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/ewhitmore/marquee/internal/booking"
	"github.com/ewhitmore/marquee/internal/database"
	"github.com/ewhitmore/marquee/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	// Ensure foreign keys are enforced (modernc/sqlite may not honor DSN param for :memory:)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testClient(t *testing.T, db *sql.DB) *model.Client {
	t.Helper()
	c, err := NewClientStore(db).Create("Avery", "Whitmore", "avery@example.com", "555-0100")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c
}

func TestEventCreateAndGetByID(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)
	client := testClient(t, db)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 6, 15, 17, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)

	event, err := s.Create("Summer Wedding", client.ID, day, start, end, "Rose Hall", "Outdoor ceremony", model.EventBooked)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}
	if event.ID == "" {
		t.Fatal("event ID should be assigned")
	}
	if event.Name != "Summer Wedding" {
		t.Errorf("name = %q, want %q", event.Name, "Summer Wedding")
	}
	if event.Venue != "Rose Hall" {
		t.Errorf("venue = %q, want %q", event.Venue, "Rose Hall")
	}
	if event.Status != model.EventBooked {
		t.Errorf("status = %q, want %q", event.Status, model.EventBooked)
	}
	if !event.EventDate.Equal(day) {
		t.Errorf("event date = %s, want %s", event.EventDate, day)
	}

	got, err := s.GetByID(event.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got == nil || got.Name != "Summer Wedding" {
		t.Errorf("got = %+v, want Summer Wedding", got)
	}
}

func TestEventGetByIDNotFound(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)

	got, err := s.GetByID("00000000-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Error("expected nil for nonexistent event")
	}
}

func TestEventCreateRejectsVenueOverlap(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)
	client := testClient(t, db)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	first, err := s.Create("First Booking", client.ID, day,
		time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		"Rose Hall", "", model.EventBooked)
	if err != nil {
		t.Fatalf("create first event: %v", err)
	}

	_, err = s.Create("Second Booking", client.ID, day,
		time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC),
		"Rose Hall", "", model.EventPlanned)
	var conflict *booking.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
	if conflict.With.ID != first.ID {
		t.Errorf("conflicting ID = %q, want %q", conflict.With.ID, first.ID)
	}

	// The rejected booking must not be persisted.
	events, err := s.ListAll()
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("got %d events, want 1", len(events))
	}
}

func TestEventCreateAllowsTouchingBoundary(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)
	client := testClient(t, db)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	if _, err := s.Create("Morning", client.ID, day,
		time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		"Rose Hall", "", model.EventBooked); err != nil {
		t.Fatalf("create morning event: %v", err)
	}

	if _, err := s.Create("Afternoon", client.ID, day,
		time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 17, 0, 0, 0, time.UTC),
		"Rose Hall", "", model.EventBooked); err != nil {
		t.Errorf("back-to-back booking rejected: %v", err)
	}
}

func TestEventCreateAllowsDifferentVenue(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)
	client := testClient(t, db)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	if _, err := s.Create("At Rose Hall", client.ID, day, start, end, "Rose Hall", "", model.EventBooked); err != nil {
		t.Fatalf("create first event: %v", err)
	}
	if _, err := s.Create("At Oak Barn", client.ID, day, start, end, "Oak Barn", "", model.EventBooked); err != nil {
		t.Errorf("same time at different venue rejected: %v", err)
	}
}

func TestEventUpdateSelfNoConflict(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)
	client := testClient(t, db)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	event, err := s.Create("Gala", client.ID, day, start, end, "Rose Hall", "", model.EventPlanned)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	// Re-saving with an unchanged range must not be rejected as self-overlapping.
	updated, err := s.Update(event.ID, "Gala (confirmed)", client.ID, day, start, end, "Rose Hall", "", model.EventBooked)
	if err != nil {
		t.Fatalf("self update rejected: %v", err)
	}
	if updated.Status != model.EventBooked {
		t.Errorf("status = %q, want %q", updated.Status, model.EventBooked)
	}
}

func TestEventUpdateRejectsOverlapWithOther(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)
	client := testClient(t, db)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	if _, err := s.Create("Morning", client.ID, day,
		time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		"Rose Hall", "", model.EventBooked); err != nil {
		t.Fatalf("create morning event: %v", err)
	}

	evening, err := s.Create("Evening", client.ID, day,
		time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC),
		"Rose Hall", "", model.EventBooked)
	if err != nil {
		t.Fatalf("create evening event: %v", err)
	}

	_, err = s.Update(evening.ID, "Evening", client.ID, day,
		time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 15, 0, 0, 0, time.UTC),
		"Rose Hall", "", model.EventBooked)
	var conflict *booking.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("err = %v, want ConflictError", err)
	}
}

func TestEventListByMonth(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)
	client := testClient(t, db)

	mk := func(name string, day time.Time) {
		t.Helper()
		start := day.Add(9 * time.Hour)
		end := day.Add(12 * time.Hour)
		if _, err := s.Create(name, client.ID, day, start, end, name+" venue", "", model.EventPlanned); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	mk("May Event", time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC))
	mk("June First", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	mk("June Mid", time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))
	mk("June Last", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC))
	mk("July Event", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC))

	events, err := s.ListByMonth(2024, time.June)
	if err != nil {
		t.Fatalf("list by month: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Name != "June First" {
		t.Errorf("first event = %q, want %q", events[0].Name, "June First")
	}
	if events[2].Name != "June Last" {
		t.Errorf("last event = %q, want %q", events[2].Name, "June Last")
	}
}

func TestEventDeleteCascadesFromClient(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)
	client := testClient(t, db)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	event, err := s.Create("Doomed", client.ID, day,
		time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		"Rose Hall", "", model.EventPlanned)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	// Dependents of the event should cascade too.
	if _, err := NewTaskStore(db).Create(event.ID, "Book florist", day); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := NewNoteStore(db).Create(event.ID, "Client prefers lilies"); err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := NewClientStore(db).Delete(client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}

	got, err := s.GetByID(event.ID)
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if got != nil {
		t.Error("event should be deleted when its client is deleted")
	}

	tasks, err := NewTaskStore(db).ListByEvent(event.ID)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks after cascade, want 0", len(tasks))
	}
}

func TestEventVendors(t *testing.T) {
	db := openTestDB(t)
	s := NewEventStore(db)
	vendors := NewVendorStore(db)
	client := testClient(t, db)

	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	event, err := s.Create("Gala", client.ID, day,
		time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
		"Rose Hall", "", model.EventPlanned)
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	florist, err := vendors.Create("Bloom & Co", "hello@bloom.example", "", "", "")
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}
	caterer, err := vendors.Create("Acme Catering", "", "", "", "")
	if err != nil {
		t.Fatalf("create vendor: %v", err)
	}

	if err := s.AddVendor(event.ID, florist.ID); err != nil {
		t.Fatalf("add vendor: %v", err)
	}
	if err := s.AddVendor(event.ID, caterer.ID); err != nil {
		t.Fatalf("add vendor: %v", err)
	}
	// Re-adding is a no-op, not an error.
	if err := s.AddVendor(event.ID, florist.ID); err != nil {
		t.Fatalf("re-add vendor: %v", err)
	}

	linked, err := s.ListVendors(event.ID)
	if err != nil {
		t.Fatalf("list vendors: %v", err)
	}
	if len(linked) != 2 {
		t.Fatalf("got %d vendors, want 2", len(linked))
	}
	if linked[0].Name != "Acme Catering" {
		t.Errorf("first vendor = %q, want %q (name order)", linked[0].Name, "Acme Catering")
	}

	if err := s.RemoveVendor(event.ID, florist.ID); err != nil {
		t.Fatalf("remove vendor: %v", err)
	}
	linked, err = s.ListVendors(event.ID)
	if err != nil {
		t.Fatalf("list vendors: %v", err)
	}
	if len(linked) != 1 {
		t.Fatalf("got %d vendors after removal, want 1", len(linked))
	}
}
