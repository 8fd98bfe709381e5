package store

import "testing"

func TestClientCreateAndList(t *testing.T) {
	db := openTestDB(t)
	s := NewClientStore(db)

	if _, err := s.Create("Morgan", "Ames", "morgan@example.com", "555-0101"); err != nil {
		t.Fatalf("create client: %v", err)
	}
	if _, err := s.Create("Jordan", "Blake", "jordan@example.com", ""); err != nil {
		t.Fatalf("create client: %v", err)
	}

	clients, err := s.List()
	if err != nil {
		t.Fatalf("list clients: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("got %d clients, want 2", len(clients))
	}
	// Ordered by last name.
	if clients[0].LastName != "Ames" {
		t.Errorf("first client = %q, want %q", clients[0].LastName, "Ames")
	}
}

func TestClientEmailExists(t *testing.T) {
	db := openTestDB(t)
	s := NewClientStore(db)

	c, err := s.Create("Morgan", "Ames", "morgan@example.com", "")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	exists, err := s.EmailExists("morgan@example.com", 0)
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Error("expected email to exist")
	}

	// The client's own row is excluded when updating.
	exists, err = s.EmailExists("morgan@example.com", c.ID)
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if exists {
		t.Error("client's own email should not count against itself")
	}

	exists, err = s.EmailExists("someone-else@example.com", 0)
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if exists {
		t.Error("unused email reported as existing")
	}
}

func TestClientUpdate(t *testing.T) {
	db := openTestDB(t)
	s := NewClientStore(db)

	c, err := s.Create("Morgan", "Ames", "morgan@example.com", "")
	if err != nil {
		t.Fatalf("create client: %v", err)
	}

	updated, err := s.Update(c.ID, "Morgan", "Ames-Blake", "morgan@example.com", "555-0199")
	if err != nil {
		t.Fatalf("update client: %v", err)
	}
	if updated.LastName != "Ames-Blake" {
		t.Errorf("last name = %q, want %q", updated.LastName, "Ames-Blake")
	}
	if updated.PhoneNumber != "555-0199" {
		t.Errorf("phone = %q, want %q", updated.PhoneNumber, "555-0199")
	}
}
