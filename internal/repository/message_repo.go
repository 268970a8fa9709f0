package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/linklift/linklift/internal/models"
)

type MessageRepository interface {
	Append(ctx context.Context, msg *models.Message) error
	ListByRide(ctx context.Context, rideID string) ([]*models.Message, error)
}

type messageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Append(ctx context.Context, msg *models.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	msg.CreatedAt = time.Now()

	query := `
		INSERT INTO messages (id, ride_id, author_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.RideID, msg.AuthorID, msg.Body, msg.CreatedAt)
	return err
}

func (r *messageRepository) ListByRide(ctx context.Context, rideID string) ([]*models.Message, error) {
	var messages []*models.Message
	query := `SELECT * FROM messages WHERE ride_id = $1 ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &messages, query, rideID)
	return messages, err
}
