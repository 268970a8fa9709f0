package models

import (
	"time"
)

// Message is one entry in a ride's append-only chat log.
type Message struct {
	ID        string    `db:"id" json:"id"`
	RideID    string    `db:"ride_id" json:"ride_id"`
	AuthorID  string    `db:"author_id" json:"author_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type PostMessageRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

type MessageResponse struct {
	ID        string        `json:"id"`
	Author    *UserResponse `json:"author,omitempty"`
	Body      string        `json:"body"`
	CreatedAt time.Time     `json:"created_at"`
}

func (m *Message) ToResponse() *MessageResponse {
	return &MessageResponse{
		ID:        m.ID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}
