package model

import "time"

type Message struct {
	ID        int64     `json:"id"`
	EventID   string    `json:"event_id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Content   string    `json:"content"`
	SentAt    time.Time `json:"sent_at"`
}
