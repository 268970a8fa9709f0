package service

import (
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/route"
)

// RideSummary holds the per-ride display aggregates. They are derived from
// the request set on every read; nothing here is persisted.
type RideSummary struct {
	AvailableSeats  int
	PendingRequests int
}

// Summarize recomputes seat availability and the pending count from a ride
// and its full request set. AvailableSeats never goes negative; the state
// machine refuses transitions that would drive it there.
func Summarize(ride *models.Ride, requests []*models.Request) RideSummary {
	approved := 0
	pending := 0
	for _, req := range requests {
		switch req.Status {
		case models.RequestStatusApproved:
			approved += req.NumPassengers
		case models.RequestStatusPending:
			pending++
		}
	}

	available := ride.Capacity - approved
	if available < 0 {
		available = 0
	}
	return RideSummary{
		AvailableSeats:  available,
		PendingRequests: pending,
	}
}

// Passenger is one roster entry: the publisher or an approved requester.
type Passenger struct {
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	IsPublisher   bool    `json:"is_publisher"`
	RequestID     string  `json:"request_id,omitempty"`
	Seats         int     `json:"num_passengers"`
	Price         float64 `json:"price"`
	PickupCity    string  `json:"pickup_city"`
	PickupAddress string  `json:"pickup_address"`
	DropCity      string  `json:"drop_city"`
	DropAddress   string  `json:"drop_address"`
}

// Passengers builds the full roster: the publisher first (one seat, reference
// price, riding the whole route), then every approved requester with their
// effective price and the request id needed to drive removal. Requests whose
// rider record is missing are skipped.
func Passengers(ride *models.Ride, publisher *models.User, requests []*models.Request, riders map[string]*models.User) []Passenger {
	roster := make([]Passenger, 0, len(requests)+1)
	if publisher != nil {
		roster = append(roster, Passenger{
			UserID:        publisher.ID,
			Name:          publisher.Name,
			Email:         publisher.Email,
			IsPublisher:   true,
			Seats:         1,
			Price:         ride.CostPerPerson,
			PickupCity:    ride.PickupCity,
			PickupAddress: ride.PickupAddress,
			DropCity:      ride.DropCity,
			DropAddress:   ride.DropAddress,
		})
	}

	for _, req := range requests {
		if req.Status != models.RequestStatusApproved {
			continue
		}
		rider, ok := riders[req.RiderID]
		if !ok {
			continue
		}
		roster = append(roster, Passenger{
			UserID:        rider.ID,
			Name:          rider.Name,
			Email:         rider.Email,
			RequestID:     req.ID,
			Seats:         req.NumPassengers,
			Price:         req.EffectivePrice(ride.CostPerPerson),
			PickupCity:    req.PickupCity,
			PickupAddress: req.PickupAddress,
			DropCity:      req.DropCity,
			DropAddress:   req.DropAddress,
		})
	}
	return roster
}

// JourneyMembers filters the roster down to passengers whose sub-route shares
// at least one leg with the given rider's sub-route. The publisher spans the
// whole route and therefore always shares a leg with any valid sub-route.
func JourneyMembers(ride *models.Ride, roster []Passenger, riderPickup, riderDrop string) []Passenger {
	fullRoute := ride.Route()
	rStart, rEnd, ok := route.Segment(fullRoute, riderPickup, riderDrop)
	if !ok {
		return nil
	}

	members := make([]Passenger, 0, len(roster))
	for _, p := range roster {
		pStart, pEnd, ok := route.Segment(fullRoute, p.PickupCity, p.DropCity)
		if !ok {
			continue
		}
		if route.SegmentsIntersect(rStart, rEnd, pStart, pEnd) {
			members = append(members, p)
		}
	}
	return members
}

// participant reports whether a user is riding: the publisher or the holder
// of an approved request.
func participant(ride *models.Ride, requests []*models.Request, userID string) bool {
	if ride.PublisherID == userID {
		return true
	}
	for _, req := range requests {
		if req.RiderID == userID && req.Status == models.RequestStatusApproved {
			return true
		}
	}
	return false
}
