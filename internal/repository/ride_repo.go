package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/linklift/linklift/internal/models"
)

type RideRepository interface {
	Create(ctx context.Context, ride *models.Ride) error
	GetByID(ctx context.Context, id string) (*models.Ride, error)
	GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (*models.Ride, error)
	ListByPublisher(ctx context.Context, publisherID string) ([]*models.Ride, error)
	SearchCandidates(ctx context.Context, date, excludePublisherID string, womenOnly bool) ([]*models.Ride, error)
	Delete(ctx context.Context, tx *sqlx.Tx, id string) error
}

type rideRepository struct {
	db *sqlx.DB
}

func NewRideRepository(db *sqlx.DB) RideRepository {
	return &rideRepository{db: db}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	if ride.ID == "" {
		ride.ID = uuid.New().String()
	}
	ride.CreatedAt = time.Now()

	query := `
		INSERT INTO rides (id, publisher_id, pickup_city, pickup_address, drop_city,
			drop_address, on_route_cities, depart_date, depart_time, capacity,
			cost_per_person, women_only, car_model, license_plate, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		ride.ID, ride.PublisherID, ride.PickupCity, ride.PickupAddress, ride.DropCity,
		ride.DropAddress, ride.OnRouteCities, ride.DepartDate, ride.DepartTime, ride.Capacity,
		ride.CostPerPerson, ride.WomenOnly, ride.CarModel, ride.LicensePlate, ride.CreatedAt)
	return err
}

func (r *rideRepository) GetByID(ctx context.Context, id string) (*models.Ride, error) {
	var ride models.Ride
	query := `SELECT * FROM rides WHERE id = $1`
	err := r.db.GetContext(ctx, &ride, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &ride, err
}

// GetByIDForUpdate locks the ride row. Every mutation of a ride's request set
// goes through this lock, serializing seat accounting per ride.
func (r *rideRepository) GetByIDForUpdate(ctx context.Context, tx *sqlx.Tx, id string) (*models.Ride, error) {
	var ride models.Ride
	query := `SELECT * FROM rides WHERE id = $1 FOR UPDATE`
	err := tx.GetContext(ctx, &ride, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &ride, err
}

func (r *rideRepository) ListByPublisher(ctx context.Context, publisherID string) ([]*models.Ride, error) {
	var rides []*models.Ride
	query := `
		SELECT * FROM rides
		WHERE publisher_id = $1
		ORDER BY depart_date DESC, depart_time DESC
	`
	err := r.db.SelectContext(ctx, &rides, query, publisherID)
	return rides, err
}

// SearchCandidates fetches the coarse candidate set for a calendar day.
// Route overlap, departure and seat eligibility are applied by the caller.
func (r *rideRepository) SearchCandidates(ctx context.Context, date, excludePublisherID string, womenOnly bool) ([]*models.Ride, error) {
	var rides []*models.Ride
	query := `
		SELECT * FROM rides
		WHERE depart_date = $1 AND publisher_id <> $2 AND women_only = $3
		ORDER BY depart_date ASC, depart_time ASC
	`
	err := r.db.SelectContext(ctx, &rides, query, date, excludePublisherID, womenOnly)
	return rides, err
}

func (r *rideRepository) Delete(ctx context.Context, tx *sqlx.Tx, id string) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM rides WHERE id = $1`, id)
	return err
}
