package service

import (
	"context"
	"testing"
	"time"

	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/schedule"
	"github.com/linklift/linklift/internal/types"
)

type fakeCityCatalog struct {
	cities map[string]bool
}

func (f *fakeCityCatalog) List(ctx context.Context) ([]string, error) {
	out := make([]string, 0, len(f.cities))
	for c := range f.cities {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCityCatalog) Contains(ctx context.Context, city string) (bool, error) {
	return f.cities[city], nil
}

func knownCities() *fakeCityCatalog {
	return &fakeCityCatalog{cities: map[string]bool{
		"Mumbai": true, "Pune": true, "Lonavala": true, "Khopoli": true, "Nashik": true,
	}}
}

func TestPublish(t *testing.T) {
	users := &fakeUserRepo{users: map[string]*models.User{
		"pub-1": {ID: "pub-1", Name: "Asha Rao", Email: "asha@linklift.in"},
	}}
	rides := &fakeRideRepo{}
	svc := NewRideService(nil, rides, &fakeRequestRepo{}, users, knownCities())

	departAt := time.Now().Add(24 * time.Hour)
	base := func() *models.CreateRideRequest {
		return &models.CreateRideRequest{
			PickupCity:    "Mumbai",
			PickupAddress: "Dadar",
			DropCity:      "Pune",
			DropAddress:   "Shivajinagar",
			OnRouteCities: []string{"Lonavala"},
			DepartDate:    departAt.Format(schedule.DateLayout),
			DepartTime:    departAt.Format(schedule.TimeLayout),
			Capacity:      3,
			CostPerPerson: 300,
			CarModel:      "Maruti Swift",
			LicensePlate:  "MH12AB1234",
		}
	}

	t.Run("Valid ride", func(t *testing.T) {
		ride, err := svc.Publish(context.Background(), "pub-1", base())
		if err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		if ride.ID == "" {
			t.Error("Publish() should assign an id")
		}
		if ride.PublisherID != "pub-1" {
			t.Errorf("PublisherID = %s, want pub-1", ride.PublisherID)
		}
	})

	t.Run("Unknown publisher", func(t *testing.T) {
		if _, err := svc.Publish(context.Background(), "ghost", base()); err == nil {
			t.Error("Publish() for unknown user should error")
		}
	})

	t.Run("Unknown city", func(t *testing.T) {
		dto := base()
		dto.DropCity = "Atlantis"
		if _, err := svc.Publish(context.Background(), "pub-1", dto); err == nil {
			t.Error("Publish() with unknown city should error")
		}
	})

	t.Run("Waypoint duplicates endpoint", func(t *testing.T) {
		dto := base()
		dto.OnRouteCities = []string{"Mumbai"}
		if _, err := svc.Publish(context.Background(), "pub-1", dto); err == nil {
			t.Error("Publish() with pickup as waypoint should error")
		}
	})

	t.Run("Departure in the past", func(t *testing.T) {
		dto := base()
		past := time.Now().Add(-2 * time.Hour)
		dto.DepartDate = past.Format(schedule.DateLayout)
		dto.DepartTime = past.Format(schedule.TimeLayout)
		if _, err := svc.Publish(context.Background(), "pub-1", dto); err == nil {
			t.Error("Publish() in the past should error")
		}
	})
}

func TestGetRideDetails(t *testing.T) {
	ride := futureRide("ride-1", "pub-1", "Mumbai", "Pune", []string{"Lonavala", "Khopoli"}, 4)
	ride.PickupAddress = "Dadar"
	ride.DropAddress = "Shivajinagar"

	rides := &fakeRideRepo{rides: []*models.Ride{ride}}
	requests := &fakeRequestRepo{requests: []*models.Request{
		{
			ID: "req-approved", RideID: "ride-1", RiderID: "rider-1",
			Status: models.RequestStatusApproved, NumPassengers: 1,
			PickupCity: "Mumbai", DropCity: "Lonavala",
			PriceOffer: types.MoneyFrom(250),
		},
		{
			ID: "req-pending", RideID: "ride-1", RiderID: "rider-2",
			Status: models.RequestStatusPending, NumPassengers: 2,
			PickupCity: "Lonavala", DropCity: "Pune",
		},
	}}
	users := &fakeUserRepo{users: map[string]*models.User{
		"pub-1":   {ID: "pub-1", Name: "Asha Rao", Email: "asha@linklift.in"},
		"rider-1": {ID: "rider-1", Name: "Ravi Kumar", Email: "ravi@linklift.in"},
		"rider-2": {ID: "rider-2", Name: "Neha Joshi", Email: "neha@linklift.in"},
	}}

	svc := NewRideService(nil, rides, requests, users, knownCities())

	t.Run("Publisher view", func(t *testing.T) {
		details, err := svc.Get(context.Background(), "pub-1", "ride-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if len(details.PendingRequests) != 1 || details.PendingRequests[0].ID != "req-pending" {
			t.Errorf("publisher should see the pending queue, got %+v", details.PendingRequests)
		}
		if details.Ride.AvailableSeats != 3 {
			t.Errorf("AvailableSeats = %d, want 3", details.Ride.AvailableSeats)
		}
		// Publisher plus the approved rider.
		if len(details.AllPassengers) != 2 {
			t.Errorf("AllPassengers = %d entries, want 2", len(details.AllPassengers))
		}
	})

	t.Run("Approved rider view", func(t *testing.T) {
		details, err := svc.Get(context.Background(), "rider-1", "ride-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if details.PendingRequests != nil {
			t.Error("rider should not see the pending queue")
		}
		if details.YourPrice == nil || *details.YourPrice != 250 {
			t.Errorf("YourPrice = %v, want offered 250", details.YourPrice)
		}
		if len(details.JourneyMembers) == 0 {
			t.Error("approved rider should see journey members")
		}
	})

	t.Run("Pending rider view", func(t *testing.T) {
		details, err := svc.Get(context.Background(), "rider-2", "ride-1")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if details.YourPrice == nil || *details.YourPrice != 300 {
			t.Errorf("YourPrice = %v, want reference 300", details.YourPrice)
		}
		if details.JourneyMembers != nil {
			t.Error("pending rider should not see journey members yet")
		}
	})

	t.Run("Missing ride", func(t *testing.T) {
		if _, err := svc.Get(context.Background(), "pub-1", "nope"); err == nil {
			t.Error("Get() on missing ride should error")
		}
	})
}

func TestHistory(t *testing.T) {
	futurePublished := futureRide("ride-future", "member", "Mumbai", "Pune", nil, 3)

	pastAt := time.Now().Add(-48 * time.Hour)
	pastPublished := futureRide("ride-past", "member", "Pune", "Mumbai", nil, 3)
	pastPublished.DepartDate = pastAt.Format(schedule.DateLayout)
	pastPublished.DepartTime = pastAt.Format(schedule.TimeLayout)

	futureRequested := futureRide("ride-req-future", "pub-2", "Mumbai", "Nashik", nil, 3)
	futureRejected := futureRide("ride-req-rejected", "pub-3", "Mumbai", "Nashik", nil, 3)
	pastRequested := futureRide("ride-req-past", "pub-4", "Nashik", "Mumbai", nil, 3)
	pastRequested.DepartDate = pastAt.Format(schedule.DateLayout)
	pastRequested.DepartTime = pastAt.Format(schedule.TimeLayout)

	rides := &fakeRideRepo{rides: []*models.Ride{
		futurePublished, pastPublished, futureRequested, futureRejected, pastRequested,
	}}
	requests := &fakeRequestRepo{requests: []*models.Request{
		{ID: "r1", RideID: "ride-req-future", RiderID: "member", Status: models.RequestStatusPending, NumPassengers: 1},
		{ID: "r2", RideID: "ride-req-rejected", RiderID: "member", Status: models.RequestStatusRejected, NumPassengers: 1},
		{ID: "r3", RideID: "ride-req-past", RiderID: "member", Status: models.RequestStatusApproved, NumPassengers: 1},
	}}
	users := &fakeUserRepo{users: map[string]*models.User{
		"member": {ID: "member", Name: "Member", Email: "m@linklift.in"},
	}}

	svc := NewRideService(nil, rides, requests, users, knownCities())

	history, err := svc.History(context.Background(), "member")
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}

	if len(history.Upcoming.Published) != 1 || history.Upcoming.Published[0].ID != "ride-future" {
		t.Errorf("Upcoming.Published = %v", ids(history.Upcoming.Published))
	}
	if len(history.Past.Published) != 1 || history.Past.Published[0].ID != "ride-past" {
		t.Errorf("Past.Published = %v", ids(history.Past.Published))
	}

	if len(history.Upcoming.Requested) != 1 || history.Upcoming.Requested[0].Ride.ID != "ride-req-future" {
		t.Errorf("Upcoming.Requested has %d entries, want only the active future request", len(history.Upcoming.Requested))
	}
	// Rejected future requests appear in neither bucket.
	for _, entry := range history.Past.Requested {
		if entry.Ride.ID == "ride-req-rejected" {
			t.Error("rejected future request should not appear in past either")
		}
	}
	if len(history.Past.Requested) != 1 || history.Past.Requested[0].Ride.ID != "ride-req-past" {
		t.Errorf("Past.Requested has %d entries, want the departed ride only", len(history.Past.Requested))
	}
}
