package models

import (
	"time"

	"github.com/linklift/linklift/internal/types"
)

// Request status constants. Cancellation and removal are not statuses:
// they delete the request record.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// Valid request state transitions
var ValidRequestTransitions = map[string][]string{
	RequestStatusPending:  {RequestStatusApproved, RequestStatusRejected},
	RequestStatusApproved: {},
	RequestStatusRejected: {},
}

// Request is a rider's claim on seats along a sub-segment of a ride's route.
type Request struct {
	ID            string          `db:"id" json:"id"`
	RideID        string          `db:"ride_id" json:"ride_id"`
	RiderID       string          `db:"rider_id" json:"rider_id"`
	NumPassengers int             `db:"num_passengers" json:"num_passengers"`
	PickupCity    string          `db:"pickup_city" json:"pickup_city"`
	PickupAddress string          `db:"pickup_address" json:"pickup_address"`
	DropCity      string          `db:"drop_city" json:"drop_city"`
	DropAddress   string          `db:"drop_address" json:"drop_address"`
	PriceOffer    types.NullMoney `db:"price_offer" json:"price_offer"`
	Status        string          `db:"status" json:"status"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// CanTransitionTo checks if a request can transition to a new status
func (r *Request) CanTransitionTo(newStatus string) bool {
	validNextStates, exists := ValidRequestTransitions[r.Status]
	if !exists {
		return false
	}

	for _, state := range validNextStates {
		if state == newStatus {
			return true
		}
	}
	return false
}

// IsActive returns true while the request holds or may hold seats.
func (r *Request) IsActive() bool {
	return r.Status == RequestStatusPending || r.Status == RequestStatusApproved
}

// EffectivePrice is the rider's offer if present, else the ride's
// reference price.
func (r *Request) EffectivePrice(referencePrice float64) float64 {
	return r.PriceOffer.Or(referencePrice)
}

type CreateRequestRequest struct {
	RideID        string   `json:"ride_id" validate:"required,uuid"`
	NumPassengers int      `json:"num_passengers" validate:"required,min=1"`
	PickupCity    string   `json:"pickup_city" validate:"required,max=100"`
	PickupAddress string   `json:"pickup_address" validate:"required,max=200"`
	DropCity      string   `json:"drop_city" validate:"required,max=100"`
	DropAddress   string   `json:"drop_address" validate:"required,max=200"`
	PriceOffer    *float64 `json:"price_offer,omitempty" validate:"omitempty,min=0"`
}

type RequestResponse struct {
	ID            string          `json:"id"`
	RideID        string          `json:"ride_id"`
	Rider         *UserResponse   `json:"rider,omitempty"`
	NumPassengers int             `json:"num_passengers"`
	PickupCity    string          `json:"pickup_city"`
	PickupAddress string          `json:"pickup_address"`
	DropCity      string          `json:"drop_city"`
	DropAddress   string          `json:"drop_address"`
	PriceOffer    types.NullMoney `json:"price_offer"`
	OriginalPrice float64         `json:"original_price"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

func (r *Request) ToResponse(referencePrice float64) *RequestResponse {
	return &RequestResponse{
		ID:            r.ID,
		RideID:        r.RideID,
		NumPassengers: r.NumPassengers,
		PickupCity:    r.PickupCity,
		PickupAddress: r.PickupAddress,
		DropCity:      r.DropCity,
		DropAddress:   r.DropAddress,
		PriceOffer:    r.PriceOffer,
		OriginalPrice: referencePrice,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
	}
}

// RequestedRide pairs a rider's request with its target ride for listings.
type RequestedRide struct {
	Request *RequestResponse `json:"request"`
	Ride    *RideResponse    `json:"ride"`
}
