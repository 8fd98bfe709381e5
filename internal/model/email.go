package model

import "time"

// EmailStatus is the delivery state of a stored email.
type EmailStatus string

const (
	EmailDraft  EmailStatus = "draft"
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

func (s EmailStatus) Valid() bool {
	switch s {
	case EmailDraft, EmailSent, EmailFailed:
		return true
	}
	return false
}

type Email struct {
	ID        int64       `json:"id"`
	Sender    string      `json:"sender"`
	Recipient string      `json:"recipient"`
	Subject   string      `json:"subject"`
	Content   string      `json:"content"`
	SentAt    time.Time   `json:"sent_at"`
	IsRead    bool        `json:"is_read"`
	Status    EmailStatus `json:"status"`
}
