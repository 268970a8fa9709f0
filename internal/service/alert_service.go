package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/linklift/linklift/internal/errors"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/observability"
	"github.com/linklift/linklift/internal/repository"
	"github.com/linklift/linklift/internal/schedule"
)

const alertChannelPrefix = "alerts:ride:"

// AlertService emits one-shot emergency alerts for rides that are underway.
// The gate lives here; delivery is fire-and-forget via Redis pub/sub.
type AlertService interface {
	Trigger(ctx context.Context, rideID, userID string) (string, error)
}

type alertService struct {
	rideRepo    repository.RideRepository
	requestRepo repository.RequestRepository
	redis       *redis.Client
}

func NewAlertService(
	rideRepo repository.RideRepository,
	requestRepo repository.RequestRepository,
	redisClient *redis.Client,
) AlertService {
	return &alertService{
		rideRepo:    rideRepo,
		requestRepo: requestRepo,
		redis:       redisClient,
	}
}

type alertEvent struct {
	RideID  string    `json:"ride_id"`
	UserID  string    `json:"user_id"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Trigger fires an emergency alert. Permitted only for ride participants, and
// only while the ride is active: departed, no pending requests outstanding,
// and more than one passenger aboard.
func (s *alertService) Trigger(ctx context.Context, rideID, userID string) (string, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return "", err
	}
	if ride == nil {
		return "", apperrors.NotFound("ride")
	}

	requests, err := s.requestRepo.ListByRide(ctx, rideID)
	if err != nil {
		return "", err
	}
	if !participant(ride, requests, userID) {
		return "", apperrors.NotAuthorized("only ride participants can trigger an alert")
	}

	departure, err := ride.DepartureAt()
	if err != nil {
		return "", err
	}

	summary := Summarize(ride, requests)
	aboard := 1 // publisher
	for _, req := range requests {
		if req.Status == models.RequestStatusApproved {
			aboard++
		}
	}
	if !schedule.Underway(departure, time.Now()) || summary.PendingRequests > 0 || aboard <= 1 {
		return "", apperrors.InvalidState("ride is not active")
	}

	message := fmt.Sprintf("EMERGENCY ALERT TRIGGERED for ride %s! Ride details have been shared with admin and emergency contacts. Stay safe.", rideID)
	event := alertEvent{
		RideID:  rideID,
		UserID:  userID,
		Message: message,
		At:      time.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	if err := s.redis.Publish(ctx, alertChannelPrefix+rideID, payload).Err(); err != nil {
		// The alert gate already passed; delivery failures must not mask that.
		log.Printf("failed to publish alert for ride %s: %v", rideID, err)
	}

	observability.AlertsTotal.Inc()
	return message, nil
}
