package service

import (
	"testing"

	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/types"
)

func testRide() *models.Ride {
	return &models.Ride{
		ID:            "ride-1",
		PublisherID:   "pub-1",
		PickupCity:    "Mumbai",
		PickupAddress: "Dadar station",
		DropCity:      "Pune",
		DropAddress:   "Shivajinagar",
		OnRouteCities: []string{"Lonavala", "Khopoli"},
		DepartDate:    "2026-09-15",
		DepartTime:    "09:00",
		Capacity:      4,
		CostPerPerson: 300,
	}
}

func TestSummarize(t *testing.T) {
	ride := testRide()

	tests := []struct {
		name          string
		requests      []*models.Request
		wantAvailable int
		wantPending   int
	}{
		{
			name:          "No requests",
			requests:      nil,
			wantAvailable: 4,
			wantPending:   0,
		},
		{
			name: "Approved seats reduce availability",
			requests: []*models.Request{
				{Status: models.RequestStatusApproved, NumPassengers: 2},
				{Status: models.RequestStatusApproved, NumPassengers: 1},
			},
			wantAvailable: 1,
			wantPending:   0,
		},
		{
			name: "Pending and rejected do not hold seats",
			requests: []*models.Request{
				{Status: models.RequestStatusPending, NumPassengers: 3},
				{Status: models.RequestStatusPending, NumPassengers: 2},
				{Status: models.RequestStatusRejected, NumPassengers: 4},
			},
			wantAvailable: 4,
			wantPending:   2,
		},
		{
			name: "Full ride",
			requests: []*models.Request{
				{Status: models.RequestStatusApproved, NumPassengers: 4},
			},
			wantAvailable: 0,
			wantPending:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(ride, tt.requests)
			if got.AvailableSeats != tt.wantAvailable {
				t.Errorf("AvailableSeats = %d, want %d", got.AvailableSeats, tt.wantAvailable)
			}
			if got.PendingRequests != tt.wantPending {
				t.Errorf("PendingRequests = %d, want %d", got.PendingRequests, tt.wantPending)
			}

			// Derived invariant: approved seats plus availability is capacity
			// whenever the ride is not overdrawn.
			approved := 0
			for _, r := range tt.requests {
				if r.Status == models.RequestStatusApproved {
					approved += r.NumPassengers
				}
			}
			if approved <= ride.Capacity && got.AvailableSeats+approved != ride.Capacity {
				t.Errorf("available(%d) + approved(%d) != capacity(%d)",
					got.AvailableSeats, approved, ride.Capacity)
			}
		})
	}
}

func TestPassengers(t *testing.T) {
	ride := testRide()
	publisher := &models.User{ID: "pub-1", Name: "Asha Rao", Email: "asha@linklift.in"}

	requests := []*models.Request{
		{
			ID: "req-1", RiderID: "rider-1", Status: models.RequestStatusApproved,
			NumPassengers: 2, PickupCity: "Mumbai", DropCity: "Lonavala",
			PriceOffer: types.MoneyFrom(250),
		},
		{
			ID: "req-2", RiderID: "rider-2", Status: models.RequestStatusApproved,
			NumPassengers: 1, PickupCity: "Khopoli", DropCity: "Pune",
		},
		{ID: "req-3", RiderID: "rider-3", Status: models.RequestStatusPending, NumPassengers: 1},
		{ID: "req-4", RiderID: "ghost", Status: models.RequestStatusApproved, NumPassengers: 1},
	}
	riders := map[string]*models.User{
		"rider-1": {ID: "rider-1", Name: "Ravi Kumar", Email: "ravi@linklift.in"},
		"rider-2": {ID: "rider-2", Name: "Neha Joshi", Email: "neha@linklift.in"},
		"rider-3": {ID: "rider-3", Name: "Pending Person", Email: "p@linklift.in"},
	}

	roster := Passengers(ride, publisher, requests, riders)

	// Publisher first, then the two approved requesters with known riders.
	if len(roster) != 3 {
		t.Fatalf("len(roster) = %d, want 3", len(roster))
	}
	if !roster[0].IsPublisher || roster[0].UserID != "pub-1" {
		t.Errorf("roster[0] should be the publisher, got %+v", roster[0])
	}
	if roster[0].Seats != 1 || roster[0].Price != 300 {
		t.Errorf("publisher entry = seats %d price %v, want 1 seat at reference price", roster[0].Seats, roster[0].Price)
	}
	if roster[0].PickupCity != "Mumbai" || roster[0].DropCity != "Pune" {
		t.Errorf("publisher rides the full route, got %s -> %s", roster[0].PickupCity, roster[0].DropCity)
	}

	if roster[1].RequestID != "req-1" || roster[1].Price != 250 {
		t.Errorf("roster[1] = request %s price %v, want req-1 at offered 250", roster[1].RequestID, roster[1].Price)
	}
	if roster[2].RequestID != "req-2" || roster[2].Price != 300 {
		t.Errorf("roster[2] = request %s price %v, want req-2 at reference 300", roster[2].RequestID, roster[2].Price)
	}
}

func TestJourneyMembers(t *testing.T) {
	// CityA -> CityB -> CityC; one rider on the first leg, one on the second.
	ride := &models.Ride{
		ID:            "ride-2",
		PublisherID:   "pub-1",
		PickupCity:    "CityA",
		DropCity:      "CityC",
		OnRouteCities: []string{"CityB"},
		Capacity:      4,
		CostPerPerson: 200,
	}
	roster := []Passenger{
		{UserID: "pub-1", IsPublisher: true, PickupCity: "CityA", DropCity: "CityC"},
		{UserID: "rider-ab", PickupCity: "CityA", DropCity: "CityB"},
		{UserID: "rider-bc", PickupCity: "CityB", DropCity: "CityC"},
	}

	// The A->B rider shares a leg with the publisher only.
	members := JourneyMembers(ride, roster, "CityA", "CityB")
	if len(members) != 2 {
		t.Fatalf("len(members) = %d, want 2", len(members))
	}
	ids := map[string]bool{}
	for _, m := range members {
		ids[m.UserID] = true
	}
	if !ids["pub-1"] || !ids["rider-ab"] || ids["rider-bc"] {
		t.Errorf("A->B journey members = %v, want publisher and rider-ab only", ids)
	}

	// A full-route rider shares a leg with everyone.
	members = JourneyMembers(ride, roster, "CityA", "CityC")
	if len(members) != 3 {
		t.Errorf("full-route journey members = %d, want 3", len(members))
	}

	// Invalid segment yields nothing.
	if members = JourneyMembers(ride, roster, "CityC", "CityA"); members != nil {
		t.Errorf("reverse segment should have no members, got %v", members)
	}
}

func TestParticipant(t *testing.T) {
	ride := testRide()
	requests := []*models.Request{
		{RiderID: "rider-1", Status: models.RequestStatusApproved},
		{RiderID: "rider-2", Status: models.RequestStatusPending},
		{RiderID: "rider-3", Status: models.RequestStatusRejected},
	}

	tests := []struct {
		userID string
		want   bool
	}{
		{"pub-1", true},
		{"rider-1", true},
		{"rider-2", false},
		{"rider-3", false},
		{"stranger", false},
	}

	for _, tt := range tests {
		if got := participant(ride, requests, tt.userID); got != tt.want {
			t.Errorf("participant(%q) = %v, want %v", tt.userID, got, tt.want)
		}
	}
}
