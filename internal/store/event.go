package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ewhitmore/marquee/internal/booking"
	"github.com/ewhitmore/marquee/internal/model"
)

// dayFormat is the ISO day key used for event_date, due_date and schedule day
// columns. Stored as TEXT so lexicographic range scans match date order.
const dayFormat = "2006-01-02"

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventCols = `id, name, client_id, event_date, start_time, end_time, venue, description, status, created_at, updated_at`

func scanEvent(scanner interface{ Scan(...any) error }) (*model.Event, error) {
	var e model.Event
	var eventDate, status string

	err := scanner.Scan(
		&e.ID, &e.Name, &e.ClientID, &eventDate, &e.Start, &e.End,
		&e.Venue, &e.Description, &status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	day, err := time.Parse(dayFormat, eventDate)
	if err != nil {
		return nil, fmt.Errorf("parse event date: %w", err)
	}
	e.EventDate = day
	e.Status = model.EventStatus(status)
	return &e, nil
}

// Create inserts a new event after checking the venue is free on that day.
// The overlap scan and the insert run in one transaction; validation errors
// (booking.ErrEndNotAfterStart, *booking.ConflictError) come back unwrapped.
func (s *EventStore) Create(name string, clientID int64, eventDate, start, end time.Time, venue, description string, status model.EventStatus) (*model.Event, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := checkVenueFree(tx, id, venue, eventDate, start, end); err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO events (id, name, client_id, event_date, start_time, end_time, venue, description, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, clientID, eventDate.Format(dayFormat), start.UTC(), end.UTC(), venue, description, string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Update rewrites an event, re-running the venue overlap check with the event
// itself excluded from the comparison set.
func (s *EventStore) Update(id, name string, clientID int64, eventDate, start, end time.Time, venue, description string, status model.EventStatus) (*model.Event, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := checkVenueFree(tx, id, venue, eventDate, start, end); err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`UPDATE events
		 SET name = ?, client_id = ?, event_date = ?, start_time = ?, end_time = ?, venue = ?, description = ?, status = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, clientID, eventDate.Format(dayFormat), start.UTC(), end.UTC(), venue, description, string(status), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// checkVenueFree loads the spans already booked at the venue on the day and
// validates the candidate range against them. Venue matching is an exact
// string match, as authored.
func checkVenueFree(tx *sql.Tx, id, venue string, day, start, end time.Time) error {
	rows, err := tx.Query(
		`SELECT id, start_time, end_time FROM events WHERE venue = ? AND event_date = ?`,
		venue, day.Format(dayFormat),
	)
	if err != nil {
		return fmt.Errorf("query venue bookings: %w", err)
	}
	defer rows.Close()

	var existing []booking.Span
	for rows.Next() {
		var sp booking.Span
		if err := rows.Scan(&sp.ID, &sp.Start, &sp.End); err != nil {
			return fmt.Errorf("scan venue booking: %w", err)
		}
		existing = append(existing, sp)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate venue bookings: %w", err)
	}

	return booking.Validate(booking.Span{ID: id, Start: start.UTC(), End: end.UTC()}, existing)
}

func (s *EventStore) GetByID(id string) (*model.Event, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	return e, nil
}

func (s *EventStore) ListAll() ([]model.Event, error) {
	rows, err := s.db.Query(`SELECT ` + eventCols + ` FROM events ORDER BY event_date, start_time`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

// ListByMonth returns the events whose event day falls within (year, month).
func (s *EventStore) ListByMonth(year int, month time.Month) ([]model.Event, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	rows, err := s.db.Query(
		`SELECT `+eventCols+` FROM events
		 WHERE event_date >= ? AND event_date <= ?
		 ORDER BY event_date, start_time`,
		first.Format(dayFormat), last.Format(dayFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("list events by month: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (s *EventStore) ListByClient(clientID int64) ([]model.Event, error) {
	rows, err := s.db.Query(
		`SELECT `+eventCols+` FROM events WHERE client_id = ? ORDER BY event_date, start_time`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events by client: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]model.Event, error) {
	var events []model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *EventStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// AddVendor links a vendor to an event. Adding the same vendor twice is a no-op.
func (s *EventStore) AddVendor(eventID string, vendorID int64) error {
	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO event_vendors (event_id, vendor_id) VALUES (?, ?)`,
		eventID, vendorID,
	)
	if err != nil {
		return fmt.Errorf("add vendor to event: %w", err)
	}
	return nil
}

func (s *EventStore) RemoveVendor(eventID string, vendorID int64) error {
	_, err := s.db.Exec(
		`DELETE FROM event_vendors WHERE event_id = ? AND vendor_id = ?`,
		eventID, vendorID,
	)
	if err != nil {
		return fmt.Errorf("remove vendor from event: %w", err)
	}
	return nil
}

func (s *EventStore) ListVendors(eventID string) ([]model.Vendor, error) {
	rows, err := s.db.Query(
		`SELECT v.id, v.name, v.contact_email, v.phone_number, v.address, v.website
		 FROM vendors v
		 JOIN event_vendors ev ON ev.vendor_id = v.id
		 WHERE ev.event_id = ?
		 ORDER BY v.name`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list event vendors: %w", err)
	}
	defer rows.Close()

	var vendors []model.Vendor
	for rows.Next() {
		var v model.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.ContactEmail, &v.PhoneNumber, &v.Address, &v.Website); err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, v)
	}
	return vendors, rows.Err()
}
