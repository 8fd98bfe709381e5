package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/ewhitmore/marquee/internal/booking"
	"github.com/ewhitmore/marquee/internal/model"
)

// clockFormat is the HH:MM form schedule slot times are stored in.
const clockFormat = "15:04"

type ScheduleStore struct {
	db *sql.DB
}

func NewScheduleStore(db *sql.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

const scheduleCols = `id, day, start_time, end_time, notes`

func scanSchedule(scanner interface{ Scan(...any) error }) (*model.Schedule, error) {
	var sc model.Schedule
	var day string

	err := scanner.Scan(&sc.ID, &day, &sc.StartTime, &sc.EndTime, &sc.Notes)
	if err != nil {
		return nil, err
	}

	d, err := time.Parse(dayFormat, day)
	if err != nil {
		return nil, fmt.Errorf("parse schedule day: %w", err)
	}
	sc.Day = d
	return &sc, nil
}

// clockOn anchors an HH:MM clock time on the given day so slot ranges can be
// compared as instants.
func clockOn(day time.Time, clock string) (time.Time, error) {
	t, err := time.Parse(clockFormat, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse clock time %q: %w", clock, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

// Create inserts a schedule slot after validating its range against the other
// slots on the same day. The scan and insert share one transaction.
func (s *ScheduleStore) Create(day time.Time, startTime, endTime, notes string) (*model.Schedule, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := checkDayFree(tx, 0, day, startTime, endTime); err != nil {
		return nil, err
	}

	result, err := tx.Exec(
		`INSERT INTO schedules (day, start_time, end_time, notes) VALUES (?, ?, ?, ?)`,
		day.Format(dayFormat), startTime, endTime, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert schedule: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Update rewrites a slot, excluding the slot itself from the overlap scan.
func (s *ScheduleStore) Update(id int64, day time.Time, startTime, endTime, notes string) (*model.Schedule, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := checkDayFree(tx, id, day, startTime, endTime); err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`UPDATE schedules SET day = ?, start_time = ?, end_time = ?, notes = ? WHERE id = ?`,
		day.Format(dayFormat), startTime, endTime, notes, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update schedule: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// checkDayFree validates a candidate slot against the existing slots on the
// day. The schedule is one shared resource, so the day alone keys the
// comparison set. Pass excludeID = 0 for creates.
func checkDayFree(tx *sql.Tx, excludeID int64, day time.Time, startTime, endTime string) error {
	start, err := clockOn(day, startTime)
	if err != nil {
		return err
	}
	end, err := clockOn(day, endTime)
	if err != nil {
		return err
	}

	rows, err := tx.Query(
		`SELECT id, start_time, end_time FROM schedules WHERE day = ?`,
		day.Format(dayFormat),
	)
	if err != nil {
		return fmt.Errorf("query day slots: %w", err)
	}
	defer rows.Close()

	var existing []booking.Span
	for rows.Next() {
		var id int64
		var sc, ec string
		if err := rows.Scan(&id, &sc, &ec); err != nil {
			return fmt.Errorf("scan day slot: %w", err)
		}
		es, err := clockOn(day, sc)
		if err != nil {
			return err
		}
		ee, err := clockOn(day, ec)
		if err != nil {
			return err
		}
		existing = append(existing, booking.Span{ID: strconv.FormatInt(id, 10), Start: es, End: ee})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate day slots: %w", err)
	}

	candidate := booking.Span{Start: start, End: end}
	if excludeID != 0 {
		candidate.ID = strconv.FormatInt(excludeID, 10)
	}
	return booking.Validate(candidate, existing)
}

func (s *ScheduleStore) GetByID(id int64) (*model.Schedule, error) {
	row := s.db.QueryRow(`SELECT `+scheduleCols+` FROM schedules WHERE id = ?`, id)
	sc, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return sc, nil
}

func (s *ScheduleStore) List() ([]model.Schedule, error) {
	rows, err := s.db.Query(`SELECT ` + scheduleCols + ` FROM schedules ORDER BY day, start_time`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func (s *ScheduleStore) ListByDay(day time.Time) ([]model.Schedule, error) {
	rows, err := s.db.Query(
		`SELECT `+scheduleCols+` FROM schedules WHERE day = ? ORDER BY start_time`,
		day.Format(dayFormat),
	)
	if err != nil {
		return nil, fmt.Errorf("list schedules by day: %w", err)
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func collectSchedules(rows *sql.Rows) ([]model.Schedule, error) {
	var schedules []model.Schedule
	for rows.Next() {
		sc, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, *sc)
	}
	return schedules, rows.Err()
}

func (s *ScheduleStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
