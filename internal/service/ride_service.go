package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/linklift/linklift/internal/cache"
	apperrors "github.com/linklift/linklift/internal/errors"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/observability"
	"github.com/linklift/linklift/internal/repository"
	"github.com/linklift/linklift/internal/route"
	"github.com/linklift/linklift/internal/schedule"
)

// RideDetails is the publisher/rider view of one ride: the ride itself, its
// roster and, depending on the caller, the pending queue or co-travelers.
type RideDetails struct {
	Ride            *models.RideResponse      `json:"ride"`
	PendingRequests []*models.RequestResponse `json:"pending_requests,omitempty"`
	AllPassengers   []Passenger               `json:"all_passengers"`
	JourneyMembers  []Passenger               `json:"journey_members,omitempty"`
	YourPrice       *float64                  `json:"your_price,omitempty"`
}

// RideHistory buckets a member's published and requested rides by the
// temporal classifier.
type RideHistory struct {
	Upcoming HistoryBucket `json:"upcoming"`
	Past     HistoryBucket `json:"past"`
}

type HistoryBucket struct {
	Published []*models.RideResponse  `json:"published"`
	Requested []*models.RequestedRide `json:"requested"`
}

type RideService interface {
	Publish(ctx context.Context, publisherID string, req *models.CreateRideRequest) (*models.Ride, error)
	Get(ctx context.Context, callerID, rideID string) (*RideDetails, error)
	Cancel(ctx context.Context, publisherID, rideID string) error
	ListPublished(ctx context.Context, publisherID string) ([]*models.RideResponse, error)
	History(ctx context.Context, userID string) (*RideHistory, error)
}

type rideService struct {
	db          *sqlx.DB
	rideRepo    repository.RideRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	cities      cache.CityCatalog
}

func NewRideService(
	db *sqlx.DB,
	rideRepo repository.RideRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	cities cache.CityCatalog,
) RideService {
	return &rideService{
		db:          db,
		rideRepo:    rideRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		cities:      cities,
	}
}

func (s *rideService) Publish(ctx context.Context, publisherID string, dto *models.CreateRideRequest) (*models.Ride, error) {
	publisher, err := s.userRepo.GetByID(ctx, publisherID)
	if err != nil {
		return nil, err
	}
	if publisher == nil {
		return nil, apperrors.NotFound("user")
	}

	if err := s.checkCities(ctx, dto); err != nil {
		return nil, err
	}
	if err := route.ValidateWaypoints(dto.PickupCity, dto.DropCity, dto.OnRouteCities); err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}

	departure, err := schedule.Departure(dto.DepartDate, dto.DepartTime)
	if err != nil {
		return nil, apperrors.ValidationError(err.Error())
	}
	if departure.Before(time.Now()) {
		return nil, apperrors.BadRequest("cannot publish a ride in the past")
	}

	ride := &models.Ride{
		PublisherID:   publisherID,
		PickupCity:    dto.PickupCity,
		PickupAddress: dto.PickupAddress,
		DropCity:      dto.DropCity,
		DropAddress:   dto.DropAddress,
		OnRouteCities: dto.OnRouteCities,
		DepartDate:    dto.DepartDate,
		DepartTime:    dto.DepartTime,
		Capacity:      dto.Capacity,
		CostPerPerson: dto.CostPerPerson,
		WomenOnly:     dto.WomenOnly,
		CarModel:      dto.CarModel,
		LicensePlate:  dto.LicensePlate,
	}

	if err := s.rideRepo.Create(ctx, ride); err != nil {
		return nil, err
	}

	observability.RidesPublishedTotal.Inc()
	return ride, nil
}

func (s *rideService) Get(ctx context.Context, callerID, rideID string) (*RideDetails, error) {
	ride, err := s.rideRepo.GetByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, apperrors.NotFound("ride")
	}

	requests, err := s.requestRepo.ListByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}

	publisher, err := s.userRepo.GetByID(ctx, ride.PublisherID)
	if err != nil {
		return nil, err
	}
	if publisher == nil {
		return nil, apperrors.NotFound("publisher")
	}

	riderIDs := make([]string, 0, len(requests))
	for _, req := range requests {
		riderIDs = append(riderIDs, req.RiderID)
	}
	riders, err := s.userRepo.GetByIDs(ctx, riderIDs)
	if err != nil {
		return nil, err
	}

	summary := Summarize(ride, requests)
	rideResp := ride.ToResponse()
	rideResp.Publisher = publisher.ToResponse()
	rideResp.AvailableSeats = summary.AvailableSeats
	rideResp.PendingCount = summary.PendingRequests

	details := &RideDetails{
		Ride:          rideResp,
		AllPassengers: Passengers(ride, publisher, requests, riders),
	}

	if callerID == ride.PublisherID {
		for _, req := range requests {
			if req.Status != models.RequestStatusPending {
				continue
			}
			resp := req.ToResponse(ride.CostPerPerson)
			if rider, ok := riders[req.RiderID]; ok {
				resp.Rider = rider.ToResponse()
			}
			details.PendingRequests = append(details.PendingRequests, resp)
		}
		return details, nil
	}

	// Rider view: effective price, and co-travelers once approved.
	for _, req := range requests {
		if req.RiderID != callerID || !req.IsActive() {
			continue
		}
		price := req.EffectivePrice(ride.CostPerPerson)
		details.YourPrice = &price
		if req.Status == models.RequestStatusApproved {
			details.JourneyMembers = JourneyMembers(ride, details.AllPassengers, req.PickupCity, req.DropCity)
		}
		break
	}
	return details, nil
}

// Cancel removes a ride and cascades deletion to all of its requests in one
// transaction. Publisher-only; terminal.
func (s *rideService) Cancel(ctx context.Context, publisherID, rideID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ride, err := s.rideRepo.GetByIDForUpdate(ctx, tx, rideID)
	if err != nil {
		return err
	}
	if ride == nil {
		return apperrors.NotFound("ride")
	}
	if ride.PublisherID != publisherID {
		return apperrors.NotAuthorized("only the publisher can cancel a ride")
	}

	if err := s.requestRepo.DeleteByRideTx(ctx, tx, rideID); err != nil {
		return err
	}
	if err := s.rideRepo.Delete(ctx, tx, rideID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *rideService) ListPublished(ctx context.Context, publisherID string) ([]*models.RideResponse, error) {
	rides, err := s.rideRepo.ListByPublisher(ctx, publisherID)
	if err != nil {
		return nil, err
	}

	result := make([]*models.RideResponse, 0, len(rides))
	for _, ride := range rides {
		requests, err := s.requestRepo.ListByRide(ctx, ride.ID)
		if err != nil {
			return nil, err
		}
		summary := Summarize(ride, requests)
		resp := ride.ToResponse()
		resp.AvailableSeats = summary.AvailableSeats
		resp.PendingCount = summary.PendingRequests
		result = append(result, resp)
	}
	return result, nil
}

// History partitions the member's published and requested rides into
// upcoming/past purely by departure time. Rejected requests never show up as
// upcoming regardless of date.
func (s *rideService) History(ctx context.Context, userID string) (*RideHistory, error) {
	now := time.Now()
	history := &RideHistory{
		Upcoming: HistoryBucket{Published: []*models.RideResponse{}, Requested: []*models.RequestedRide{}},
		Past:     HistoryBucket{Published: []*models.RideResponse{}, Requested: []*models.RequestedRide{}},
	}

	published, err := s.ListPublished(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, resp := range published {
		departure, err := schedule.Departure(resp.DepartDate, resp.DepartTime)
		if err != nil {
			return nil, fmt.Errorf("ride %s: %w", resp.ID, err)
		}
		if schedule.Classify(departure, now) == schedule.BucketUpcoming {
			history.Upcoming.Published = append(history.Upcoming.Published, resp)
		} else {
			history.Past.Published = append(history.Past.Published, resp)
		}
	}

	requests, err := s.requestRepo.ListByRider(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, req := range requests {
		ride, err := s.rideRepo.GetByID(ctx, req.RideID)
		if err != nil {
			return nil, err
		}
		if ride == nil {
			continue
		}
		departure, err := ride.DepartureAt()
		if err != nil {
			return nil, err
		}

		rideResp := ride.ToResponse()
		if publisher, err := s.userRepo.GetByID(ctx, ride.PublisherID); err != nil {
			log.Printf("failed to load publisher %s for ride %s: %v", ride.PublisherID, ride.ID, err)
		} else if publisher != nil {
			rideResp.Publisher = publisher.ToResponse()
		}
		entry := &models.RequestedRide{
			Request: req.ToResponse(ride.CostPerPerson),
			Ride:    rideResp,
		}

		if schedule.Classify(departure, now) == schedule.BucketUpcoming {
			if req.IsActive() {
				history.Upcoming.Requested = append(history.Upcoming.Requested, entry)
			}
		} else {
			history.Past.Requested = append(history.Past.Requested, entry)
		}
	}
	return history, nil
}

func (s *rideService) checkCities(ctx context.Context, dto *models.CreateRideRequest) error {
	for _, city := range append([]string{dto.PickupCity, dto.DropCity}, dto.OnRouteCities...) {
		ok, err := s.cities.Contains(ctx, city)
		if err != nil {
			return err
		}
		if !ok {
			return apperrors.ValidationError(fmt.Sprintf("unknown city %q", city))
		}
	}
	return nil
}
