package store

import (
	"database/sql"
	"fmt"

	"github.com/ewhitmore/marquee/internal/model"
)

type VendorStore struct {
	db *sql.DB
}

func NewVendorStore(db *sql.DB) *VendorStore {
	return &VendorStore{db: db}
}

const vendorCols = `id, name, contact_email, phone_number, address, website`

func scanVendor(scanner interface{ Scan(...any) error }) (*model.Vendor, error) {
	var v model.Vendor
	err := scanner.Scan(&v.ID, &v.Name, &v.ContactEmail, &v.PhoneNumber, &v.Address, &v.Website)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *VendorStore) Create(name, contactEmail, phoneNumber, address, website string) (*model.Vendor, error) {
	result, err := s.db.Exec(
		`INSERT INTO vendors (name, contact_email, phone_number, address, website) VALUES (?, ?, ?, ?, ?)`,
		name, contactEmail, phoneNumber, address, website,
	)
	if err != nil {
		return nil, fmt.Errorf("insert vendor: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *VendorStore) GetByID(id int64) (*model.Vendor, error) {
	row := s.db.QueryRow(`SELECT `+vendorCols+` FROM vendors WHERE id = ?`, id)
	v, err := scanVendor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

func (s *VendorStore) List() ([]model.Vendor, error) {
	rows, err := s.db.Query(`SELECT ` + vendorCols + ` FROM vendors ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()

	var vendors []model.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		vendors = append(vendors, *v)
	}
	return vendors, rows.Err()
}

func (s *VendorStore) Update(id int64, name, contactEmail, phoneNumber, address, website string) (*model.Vendor, error) {
	_, err := s.db.Exec(
		`UPDATE vendors SET name = ?, contact_email = ?, phone_number = ?, address = ?, website = ? WHERE id = ?`,
		name, contactEmail, phoneNumber, address, website, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update vendor: %w", err)
	}
	return s.GetByID(id)
}

func (s *VendorStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM vendors WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete vendor: %w", err)
	}
	return nil
}

// NameExists reports whether another vendor already uses the name.
// Pass excludeID = 0 for creates.
func (s *VendorStore) NameExists(name string, excludeID int64) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM vendors WHERE name = ? AND id != ?`,
		name, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check vendor name: %w", err)
	}
	return count > 0, nil
}
