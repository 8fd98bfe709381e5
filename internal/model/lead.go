package model

import "time"

// LeadStatus tracks an inquiry through the sales pipeline.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadConverted LeadStatus = "converted"
	LeadClosed    LeadStatus = "closed"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadConverted, LeadClosed:
		return true
	}
	return false
}

type Lead struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	InquiryDate time.Time  `json:"inquiry_date"`
	Status      LeadStatus `json:"status"`
	Notes       string     `json:"notes"`
}
