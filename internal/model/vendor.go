package model

type Vendor struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	Website      string `json:"website"`
}
