package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/linklift/linklift/internal/models"
)

type RequestRepository interface {
	GetByID(ctx context.Context, id string) (*models.Request, error)
	ListByRide(ctx context.Context, rideID string) ([]*models.Request, error)
	ListByRider(ctx context.Context, riderID string) ([]*models.Request, error)

	// Transactional variants run under the ride row lock taken by
	// RideRepository.GetByIDForUpdate.
	CreateTx(ctx context.Context, tx *sqlx.Tx, req *models.Request) error
	GetByIDTx(ctx context.Context, tx *sqlx.Tx, id string) (*models.Request, error)
	ListByRideTx(ctx context.Context, tx *sqlx.Tx, rideID string) ([]*models.Request, error)
	UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id, status string) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, id string) error
	DeleteByRideTx(ctx context.Context, tx *sqlx.Tx, rideID string) error
}

type requestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*models.Request, error) {
	var req models.Request
	query := `SELECT * FROM requests WHERE id = $1`
	err := r.db.GetContext(ctx, &req, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &req, err
}

func (r *requestRepository) ListByRide(ctx context.Context, rideID string) ([]*models.Request, error) {
	var requests []*models.Request
	query := `SELECT * FROM requests WHERE ride_id = $1 ORDER BY created_at ASC`
	err := r.db.SelectContext(ctx, &requests, query, rideID)
	return requests, err
}

func (r *requestRepository) ListByRider(ctx context.Context, riderID string) ([]*models.Request, error) {
	var requests []*models.Request
	query := `SELECT * FROM requests WHERE rider_id = $1 ORDER BY created_at DESC`
	err := r.db.SelectContext(ctx, &requests, query, riderID)
	return requests, err
}

func (r *requestRepository) CreateTx(ctx context.Context, tx *sqlx.Tx, req *models.Request) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.Status = models.RequestStatusPending
	req.CreatedAt = time.Now()

	query := `
		INSERT INTO requests (id, ride_id, rider_id, num_passengers, pickup_city,
			pickup_address, drop_city, drop_address, price_offer, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := tx.ExecContext(ctx, query,
		req.ID, req.RideID, req.RiderID, req.NumPassengers, req.PickupCity,
		req.PickupAddress, req.DropCity, req.DropAddress, req.PriceOffer,
		req.Status, req.CreatedAt)
	return err
}

func (r *requestRepository) GetByIDTx(ctx context.Context, tx *sqlx.Tx, id string) (*models.Request, error) {
	var req models.Request
	query := `SELECT * FROM requests WHERE id = $1`
	err := tx.GetContext(ctx, &req, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &req, err
}

func (r *requestRepository) ListByRideTx(ctx context.Context, tx *sqlx.Tx, rideID string) ([]*models.Request, error) {
	var requests []*models.Request
	query := `SELECT * FROM requests WHERE ride_id = $1 ORDER BY created_at ASC`
	err := tx.SelectContext(ctx, &requests, query, rideID)
	return requests, err
}

func (r *requestRepository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, id, status string) error {
	_, err := tx.ExecContext(ctx, `UPDATE requests SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *requestRepository) DeleteTx(ctx context.Context, tx *sqlx.Tx, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM requests WHERE id = $1`, id)
	return err
}

func (r *requestRepository) DeleteByRideTx(ctx context.Context, tx *sqlx.Tx, rideID string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM requests WHERE ride_id = $1`, rideID)
	return err
}
