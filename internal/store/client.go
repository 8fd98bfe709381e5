package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitmore/marquee/internal/model"
)

type ClientStore struct {
	db *sql.DB
}

func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

const clientCols = `id, first_name, last_name, email, phone_number, created_at, updated_at`

func scanClient(scanner interface{ Scan(...any) error }) (*model.Client, error) {
	var c model.Client
	err := scanner.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PhoneNumber, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *ClientStore) Create(firstName, lastName, email, phoneNumber string) (*model.Client, error) {
	result, err := s.db.Exec(
		`INSERT INTO clients (first_name, last_name, email, phone_number) VALUES (?, ?, ?, ?)`,
		firstName, lastName, email, phoneNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ClientStore) GetByID(id int64) (*model.Client, error) {
	row := s.db.QueryRow(`SELECT `+clientCols+` FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (s *ClientStore) List() ([]model.Client, error) {
	rows, err := s.db.Query(`SELECT ` + clientCols + ` FROM clients ORDER BY last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []model.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

func (s *ClientStore) Update(id int64, firstName, lastName, email, phoneNumber string) (*model.Client, error) {
	_, err := s.db.Exec(
		`UPDATE clients SET first_name = ?, last_name = ?, email = ?, phone_number = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		firstName, lastName, email, phoneNumber, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a client. Owned events (and their tasks, messages and notes)
// go with it via foreign key cascades.
func (s *ClientStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return nil
}

// EmailExists reports whether another client already uses the email address.
// Pass excludeID = 0 for creates.
func (s *ClientStore) EmailExists(email string, excludeID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM clients WHERE email = ? AND id != ?`,
		email, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check client email: %w", err)
	}
	return count > 0, nil
}
