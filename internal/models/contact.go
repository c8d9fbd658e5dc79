package models

import "time"

type ContactStatus string

const (
	ContactPending ContactStatus = "pending"
	ContactReplied ContactStatus = "replied"
)

// Contact is a raw contact-form submission. Only the reply fields change after creation.
type Contact struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	Reply     *string       `json:"reply,omitempty"`
	ReplyDate *time.Time    `json:"reply_date,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// ContactThread is derived from submissions sharing one email; it is not persisted.
type ContactThread struct {
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Messages      []Contact `json:"messages"`
	LatestMessage Contact   `json:"latest_message"`
	TotalMessages int       `json:"total_messages"`
	HasUnreplied  bool      `json:"has_unreplied"`
}

type ContactStats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Replied int `json:"replied"`
}
