package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ewhitmore/marquee/internal/model"
)

type EmailStore struct {
	db *sql.DB
}

func NewEmailStore(db *sql.DB) *EmailStore {
	return &EmailStore{db: db}
}

const emailCols = `id, sender, recipient, subject, content, sent_at, is_read, status`

func scanEmail(scanner interface{ Scan(...any) error }) (*model.Email, error) {
	var e model.Email
	var isRead int
	var status string

	err := scanner.Scan(&e.ID, &e.Sender, &e.Recipient, &e.Subject, &e.Content, &e.SentAt, &isRead, &status)
	if err != nil {
		return nil, err
	}

	e.IsRead = isRead != 0
	e.Status = model.EmailStatus(status)
	return &e, nil
}

// Create stores a new email in draft status.
func (s *EmailStore) Create(sender, recipient, subject, content string) (*model.Email, error) {
	result, err := s.db.Exec(
		`INSERT INTO emails (sender, recipient, subject, content, status) VALUES (?, ?, ?, ?, ?)`,
		sender, recipient, subject, content, string(model.EmailDraft),
	)
	if err != nil {
		return nil, fmt.Errorf("insert email: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *EmailStore) GetByID(id int64) (*model.Email, error) {
	row := s.db.QueryRow(`SELECT `+emailCols+` FROM emails WHERE id = ?`, id)
	e, err := scanEmail(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get email: %w", err)
	}
	return e, nil
}

func (s *EmailStore) List() ([]model.Email, error) {
	rows, err := s.db.Query(`SELECT ` + emailCols + ` FROM emails ORDER BY sent_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	var emails []model.Email
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		emails = append(emails, *e)
	}
	return emails, rows.Err()
}

func (s *EmailStore) MarkRead(id int64) (*model.Email, error) {
	_, err := s.db.Exec(`UPDATE emails SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("mark email read: %w", err)
	}
	return s.GetByID(id)
}

// SetStatus records a delivery outcome. On a successful send the sent_at
// timestamp is updated to the delivery time.
func (s *EmailStore) SetStatus(id int64, status model.EmailStatus, sentAt time.Time) (*model.Email, error) {
	if status == model.EmailSent {
		_, err := s.db.Exec(`UPDATE emails SET status = ?, sent_at = ? WHERE id = ?`, string(status), sentAt.UTC(), id)
		if err != nil {
			return nil, fmt.Errorf("set email status: %w", err)
		}
		return s.GetByID(id)
	}

	_, err := s.db.Exec(`UPDATE emails SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return nil, fmt.Errorf("set email status: %w", err)
	}
	return s.GetByID(id)
}

func (s *EmailStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM emails WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete email: %w", err)
	}
	return nil
}

func (s *EmailStore) CountUnread() (int64, error) {
	var count int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM emails WHERE is_read = 0`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread emails: %w", err)
	}
	return count, nil
}
