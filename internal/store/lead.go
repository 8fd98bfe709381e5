package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ewhitmore/marquee/internal/model"
)

type LeadStore struct {
	db *sql.DB
}

func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

const leadCols = `id, first_name, last_name, email, phone_number, inquiry_date, status, notes`

func scanLead(scanner interface{ Scan(...any) error }) (*model.Lead, error) {
	var l model.Lead
	var inquiryDate, status string

	err := scanner.Scan(&l.ID, &l.FirstName, &l.LastName, &l.Email, &l.PhoneNumber, &inquiryDate, &status, &l.Notes)
	if err != nil {
		return nil, err
	}

	day, err := time.Parse(dayFormat, inquiryDate)
	if err != nil {
		return nil, fmt.Errorf("parse inquiry date: %w", err)
	}
	l.InquiryDate = day
	l.Status = model.LeadStatus(status)
	return &l, nil
}

// Create records a new inquiry. The inquiry date is set to today and the
// status starts at "new".
func (s *LeadStore) Create(firstName, lastName, email, phoneNumber, notes string) (*model.Lead, error) {
	today := time.Now().UTC().Format(dayFormat)

	result, err := s.db.Exec(
		`INSERT INTO leads (first_name, last_name, email, phone_number, inquiry_date, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		firstName, lastName, email, phoneNumber, today, string(model.LeadNew), notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert lead: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *LeadStore) GetByID(id int64) (*model.Lead, error) {
	row := s.db.QueryRow(`SELECT `+leadCols+` FROM leads WHERE id = ?`, id)
	l, err := scanLead(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (s *LeadStore) List() ([]model.Lead, error) {
	rows, err := s.db.Query(`SELECT ` + leadCols + ` FROM leads ORDER BY inquiry_date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var leads []model.Lead
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, *l)
	}
	return leads, rows.Err()
}

func (s *LeadStore) Update(id int64, firstName, lastName, email, phoneNumber string, status model.LeadStatus, notes string) (*model.Lead, error) {
	_, err := s.db.Exec(
		`UPDATE leads SET first_name = ?, last_name = ?, email = ?, phone_number = ?, status = ?, notes = ? WHERE id = ?`,
		firstName, lastName, email, phoneNumber, string(status), notes, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return s.GetByID(id)
}

func (s *LeadStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	return nil
}

// EmailExists reports whether another lead already uses the email address.
// Pass excludeID = 0 for creates.
func (s *LeadStore) EmailExists(email string, excludeID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM leads WHERE email = ? AND id != ?`,
		email, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check lead email: %w", err)
	}
	return count > 0, nil
}
