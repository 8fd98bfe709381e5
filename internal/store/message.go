package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitmore/marquee/internal/model"
)

type MessageStore struct {
	db *sql.DB
}

func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

const messageCols = `id, event_id, sender, recipient, content, sent_at`

func scanMessage(scanner interface{ Scan(...any) error }) (*model.Message, error) {
	var m model.Message
	err := scanner.Scan(&m.ID, &m.EventID, &m.Sender, &m.Recipient, &m.Content, &m.SentAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MessageStore) Create(eventID, sender, recipient, content string) (*model.Message, error) {
	result, err := s.db.Exec(
		`INSERT INTO messages (event_id, sender, recipient, content) VALUES (?, ?, ?, ?)`,
		eventID, sender, recipient, content,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MessageStore) GetByID(id int64) (*model.Message, error) {
	row := s.db.QueryRow(`SELECT `+messageCols+` FROM messages WHERE id = ?`, id)
	m, err := scanMessage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

func (s *MessageStore) ListByEvent(eventID string) ([]model.Message, error) {
	rows, err := s.db.Query(
		`SELECT `+messageCols+` FROM messages WHERE event_id = ? ORDER BY sent_at, id`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

func (s *MessageStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
