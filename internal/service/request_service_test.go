package service

import (
	"testing"
	"time"

	apperrors "github.com/linklift/linklift/internal/errors"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/schedule"
)

func errCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		return ""
	}
	apiErr, ok := err.(*apperrors.APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	return apiErr.Code
}

func TestCheckCreate(t *testing.T) {
	ride := testRide() // Mumbai -> Lonavala -> Khopoli -> Pune, capacity 4

	baseDTO := func() *models.CreateRequestRequest {
		return &models.CreateRequestRequest{
			RideID:        ride.ID,
			NumPassengers: 1,
			PickupCity:    "Mumbai",
			PickupAddress: "Dadar",
			DropCity:      "Pune",
			DropAddress:   "Shivajinagar",
		}
	}

	tests := []struct {
		name     string
		riderID  string
		requests []*models.Request
		mutate   func(*models.CreateRequestRequest)
		wantCode string
	}{
		{
			name:    "Valid request",
			riderID: "rider-1",
		},
		{
			name:     "Publisher requesting own ride",
			riderID:  "pub-1",
			wantCode: "bad_request",
		},
		{
			name:    "Reverse direction",
			riderID: "rider-1",
			mutate: func(dto *models.CreateRequestRequest) {
				dto.PickupCity = "Pune"
				dto.DropCity = "Mumbai"
			},
			wantCode: "validation_error",
		},
		{
			name:    "Pickup not on route",
			riderID: "rider-1",
			mutate: func(dto *models.CreateRequestRequest) {
				dto.PickupCity = "Nashik"
			},
			wantCode: "validation_error",
		},
		{
			name:    "Duplicate pending request",
			riderID: "rider-1",
			requests: []*models.Request{
				{RiderID: "rider-1", Status: models.RequestStatusPending, NumPassengers: 1},
			},
			wantCode: "duplicate_request",
		},
		{
			name:    "Duplicate approved request",
			riderID: "rider-1",
			requests: []*models.Request{
				{RiderID: "rider-1", Status: models.RequestStatusApproved, NumPassengers: 1},
			},
			wantCode: "duplicate_request",
		},
		{
			name:    "Rejected request does not block re-requesting",
			riderID: "rider-1",
			requests: []*models.Request{
				{RiderID: "rider-1", Status: models.RequestStatusRejected, NumPassengers: 1},
			},
		},
		{
			name:    "Not enough seats",
			riderID: "rider-1",
			requests: []*models.Request{
				{RiderID: "rider-2", Status: models.RequestStatusApproved, NumPassengers: 3},
			},
			mutate: func(dto *models.CreateRequestRequest) {
				dto.NumPassengers = 2
			},
			wantCode: "capacity_exceeded",
		},
		{
			name:    "Pending requests do not consume seats",
			riderID: "rider-1",
			requests: []*models.Request{
				{RiderID: "rider-2", Status: models.RequestStatusPending, NumPassengers: 4},
			},
			mutate: func(dto *models.CreateRequestRequest) {
				dto.NumPassengers = 4
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto := baseDTO()
			if tt.mutate != nil {
				tt.mutate(dto)
			}

			err := checkCreate(ride, tt.requests, tt.riderID, dto)
			if got := errCode(t, err); got != tt.wantCode {
				t.Errorf("checkCreate() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestCheckApprove(t *testing.T) {
	ride := testRide() // publisher pub-1, capacity 4

	tests := []struct {
		name     string
		actorID  string
		req      *models.Request
		requests []*models.Request
		wantCode string
	}{
		{
			name:    "Approve pending with free seats",
			actorID: "pub-1",
			req:     &models.Request{ID: "req-1", Status: models.RequestStatusPending, NumPassengers: 2},
		},
		{
			name:     "Non-publisher",
			actorID:  "rider-9",
			req:      &models.Request{ID: "req-1", Status: models.RequestStatusPending, NumPassengers: 1},
			wantCode: "not_authorized",
		},
		{
			name:     "Already approved",
			actorID:  "pub-1",
			req:      &models.Request{ID: "req-1", Status: models.RequestStatusApproved, NumPassengers: 1},
			wantCode: "invalid_state",
		},
		{
			name:     "Already rejected",
			actorID:  "pub-1",
			req:      &models.Request{ID: "req-1", Status: models.RequestStatusRejected, NumPassengers: 1},
			wantCode: "invalid_state",
		},
		{
			name:    "Approving would overdraw seats",
			actorID: "pub-1",
			req:     &models.Request{ID: "req-1", Status: models.RequestStatusPending, NumPassengers: 2},
			requests: []*models.Request{
				{ID: "req-other", Status: models.RequestStatusApproved, NumPassengers: 3},
			},
			wantCode: "capacity_exceeded",
		},
		{
			name:    "Exactly fills the ride",
			actorID: "pub-1",
			req:     &models.Request{ID: "req-1", Status: models.RequestStatusPending, NumPassengers: 1},
			requests: []*models.Request{
				{ID: "req-other", Status: models.RequestStatusApproved, NumPassengers: 3},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := append(tt.requests, tt.req)
			err := checkApprove(ride, tt.req, requests, tt.actorID)
			if got := errCode(t, err); got != tt.wantCode {
				t.Errorf("checkApprove() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestCheckReject(t *testing.T) {
	ride := testRide()

	tests := []struct {
		name     string
		actorID  string
		status   string
		wantCode string
	}{
		{"Reject pending", "pub-1", models.RequestStatusPending, ""},
		{"Non-publisher", "rider-9", models.RequestStatusPending, "not_authorized"},
		{"Already approved", "pub-1", models.RequestStatusApproved, "invalid_state"},
		{"Already rejected", "pub-1", models.RequestStatusRejected, "invalid_state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.Request{ID: "req-1", Status: tt.status, NumPassengers: 1}
			err := checkReject(ride, req, tt.actorID)
			if got := errCode(t, err); got != tt.wantCode {
				t.Errorf("checkReject() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestCheckCancel(t *testing.T) {
	departure := time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local)
	window := schedule.DefaultLockWindow

	tests := []struct {
		name     string
		actorID  string
		status   string
		now      time.Time
		wantCode string
	}{
		{
			name:    "Pending, well before departure",
			actorID: "rider-1",
			status:  models.RequestStatusPending,
			now:     departure.Add(-2 * time.Hour),
		},
		{
			name:    "Approved, outside the window",
			actorID: "rider-1",
			status:  models.RequestStatusApproved,
			now:     departure.Add(-2 * time.Hour),
		},
		{
			name:    "Approved, exactly at the window boundary",
			actorID: "rider-1",
			status:  models.RequestStatusApproved,
			now:     departure.Add(-window),
		},
		{
			name:     "Approved, inside the window",
			actorID:  "rider-1",
			status:   models.RequestStatusApproved,
			now:      departure.Add(-10 * time.Minute),
			wantCode: "too_late_to_cancel",
		},
		{
			name:    "Pending, inside the window",
			actorID: "rider-1",
			status:  models.RequestStatusPending,
			now:     departure.Add(-10 * time.Minute),
		},
		{
			name:     "Not the requesting rider",
			actorID:  "rider-2",
			status:   models.RequestStatusPending,
			now:      departure.Add(-2 * time.Hour),
			wantCode: "not_authorized",
		},
		{
			name:     "Already rejected",
			actorID:  "rider-1",
			status:   models.RequestStatusRejected,
			now:      departure.Add(-2 * time.Hour),
			wantCode: "invalid_state",
		},
		{
			name:    "Approved, after departure",
			actorID: "rider-1",
			status:  models.RequestStatusApproved,
			now:     departure.Add(time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.Request{ID: "req-1", RiderID: "rider-1", Status: tt.status, NumPassengers: 1}
			err := checkCancel(req, tt.actorID, departure, tt.now, window)
			if got := errCode(t, err); got != tt.wantCode {
				t.Errorf("checkCancel() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestCheckRemove(t *testing.T) {
	ride := testRide()
	departure := time.Date(2026, 9, 15, 12, 0, 0, 0, time.Local)
	window := schedule.DefaultLockWindow

	tests := []struct {
		name     string
		actorID  string
		status   string
		now      time.Time
		wantCode string
	}{
		{
			name:    "Remove approved outside the window",
			actorID: "pub-1",
			status:  models.RequestStatusApproved,
			now:     departure.Add(-2 * time.Hour),
		},
		{
			name:    "Exactly at the window boundary",
			actorID: "pub-1",
			status:  models.RequestStatusApproved,
			now:     departure.Add(-window),
		},
		{
			name:     "Inside the window",
			actorID:  "pub-1",
			status:   models.RequestStatusApproved,
			now:      departure.Add(-time.Minute),
			wantCode: "too_late_to_remove",
		},
		{
			name:     "Non-publisher",
			actorID:  "rider-9",
			status:   models.RequestStatusApproved,
			now:      departure.Add(-2 * time.Hour),
			wantCode: "not_authorized",
		},
		{
			name:     "Pending request",
			actorID:  "pub-1",
			status:   models.RequestStatusPending,
			now:      departure.Add(-2 * time.Hour),
			wantCode: "invalid_state",
		},
		{
			name:     "Rejected request",
			actorID:  "pub-1",
			status:   models.RequestStatusRejected,
			now:      departure.Add(-2 * time.Hour),
			wantCode: "invalid_state",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.Request{ID: "req-1", RiderID: "rider-1", Status: tt.status, NumPassengers: 1}
			err := checkRemove(ride, req, tt.actorID, departure, tt.now, window)
			if got := errCode(t, err); got != tt.wantCode {
				t.Errorf("checkRemove() code = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestRequestTransitions(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{models.RequestStatusPending, models.RequestStatusApproved, true},
		{models.RequestStatusPending, models.RequestStatusRejected, true},
		{models.RequestStatusApproved, models.RequestStatusRejected, false},
		{models.RequestStatusApproved, models.RequestStatusPending, false},
		{models.RequestStatusRejected, models.RequestStatusApproved, false},
		{models.RequestStatusRejected, models.RequestStatusPending, false},
	}

	for _, tt := range tests {
		req := &models.Request{Status: tt.from}
		if got := req.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
