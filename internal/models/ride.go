package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/linklift/linklift/internal/route"
	"github.com/linklift/linklift/internal/schedule"
)

// Ride is a published point-to-point trip. It is immutable after publication
// except for cancellation, which deletes it and cascades to its requests.
// Available seats are derived from approved requests, never stored.
type Ride struct {
	ID            string         `db:"id" json:"id"`
	PublisherID   string         `db:"publisher_id" json:"publisher_id"`
	PickupCity    string         `db:"pickup_city" json:"pickup_city"`
	PickupAddress string         `db:"pickup_address" json:"pickup_address"`
	DropCity      string         `db:"drop_city" json:"drop_city"`
	DropAddress   string         `db:"drop_address" json:"drop_address"`
	OnRouteCities pq.StringArray `db:"on_route_cities" json:"on_route_cities"`
	DepartDate    string         `db:"depart_date" json:"depart_date"`
	DepartTime    string         `db:"depart_time" json:"depart_time"`
	Capacity      int            `db:"capacity" json:"capacity"`
	CostPerPerson float64        `db:"cost_per_person" json:"cost_per_person"`
	WomenOnly     bool           `db:"women_only" json:"women_only"`
	CarModel      string         `db:"car_model" json:"car_model"`
	LicensePlate  string         `db:"license_plate" json:"license_plate"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// Route returns the full ordered city sequence, endpoints inclusive.
func (r *Ride) Route() []string {
	return route.Build(r.PickupCity, r.OnRouteCities, r.DropCity)
}

// DepartureAt combines the ride's date and time into a single instant.
func (r *Ride) DepartureAt() (time.Time, error) {
	return schedule.Departure(r.DepartDate, r.DepartTime)
}

type CreateRideRequest struct {
	PickupCity    string   `json:"pickup_city" validate:"required,max=100"`
	PickupAddress string   `json:"pickup_address" validate:"required,max=200"`
	DropCity      string   `json:"drop_city" validate:"required,max=100"`
	DropAddress   string   `json:"drop_address" validate:"required,max=200"`
	OnRouteCities []string `json:"on_route_cities,omitempty" validate:"omitempty,dive,max=100"`
	DepartDate    string   `json:"depart_date" validate:"required,datetime=2006-01-02"`
	DepartTime    string   `json:"depart_time" validate:"required,datetime=15:04"`
	Capacity      int      `json:"capacity" validate:"required,min=1,max=10"`
	CostPerPerson float64  `json:"cost_per_person" validate:"min=0"`
	WomenOnly     bool     `json:"women_only"`
	CarModel      string   `json:"car_model" validate:"required,max=100"`
	LicensePlate  string   `json:"license_plate" validate:"required,max=50"`
}

type SearchRidesRequest struct {
	PickupCity    string `json:"pickup_city" validate:"required,max=100"`
	PickupAddress string `json:"pickup_address,omitempty" validate:"omitempty,max=200"`
	DropCity      string `json:"drop_city" validate:"required,max=100"`
	DropAddress   string `json:"drop_address,omitempty" validate:"omitempty,max=200"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Passengers    int    `json:"passengers" validate:"required,min=1"`
	WomenOnly     bool   `json:"women_only"`
	NextDay       bool   `json:"next_day"`
}

type RideResponse struct {
	ID             string        `json:"id"`
	Publisher      *UserResponse `json:"publisher,omitempty"`
	PickupCity     string        `json:"pickup_city"`
	PickupAddress  string        `json:"pickup_address"`
	DropCity       string        `json:"drop_city"`
	DropAddress    string        `json:"drop_address"`
	OnRouteCities  []string      `json:"on_route_cities"`
	DepartDate     string        `json:"depart_date"`
	DepartTime     string        `json:"depart_time"`
	Capacity       int           `json:"capacity"`
	AvailableSeats int           `json:"available_seats"`
	PendingCount   int           `json:"pending_requests_count"`
	CostPerPerson  float64       `json:"cost_per_person"`
	WomenOnly      bool          `json:"women_only"`
	CarModel       string        `json:"car_model"`
	LicensePlate   string        `json:"license_plate"`
	CreatedAt      time.Time     `json:"created_at"`
}

func (r *Ride) ToResponse() *RideResponse {
	cities := r.OnRouteCities
	if cities == nil {
		cities = []string{}
	}
	return &RideResponse{
		ID:            r.ID,
		PickupCity:    r.PickupCity,
		PickupAddress: r.PickupAddress,
		DropCity:      r.DropCity,
		DropAddress:   r.DropAddress,
		OnRouteCities: cities,
		DepartDate:    r.DepartDate,
		DepartTime:    r.DepartTime,
		Capacity:      r.Capacity,
		CostPerPerson: r.CostPerPerson,
		WomenOnly:     r.WomenOnly,
		CarModel:      r.CarModel,
		LicensePlate:  r.LicensePlate,
		CreatedAt:     r.CreatedAt,
	}
}
