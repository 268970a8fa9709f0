package service

import (
	"context"
	"log"
	"time"

	apperrors "github.com/linklift/linklift/internal/errors"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/observability"
	"github.com/linklift/linklift/internal/repository"
	"github.com/linklift/linklift/internal/route"
	"github.com/linklift/linklift/internal/schedule"
)

type SearchService interface {
	Search(ctx context.Context, riderID string, req *models.SearchRidesRequest) ([]*models.RideResponse, error)
	SearchNextDay(ctx context.Context, riderID string, req *models.SearchRidesRequest) ([]*models.RideResponse, error)
}

type searchService struct {
	rideRepo    repository.RideRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
}

func NewSearchService(
	rideRepo repository.RideRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
) SearchService {
	return &searchService{
		rideRepo:    rideRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// Search returns rides on the requested calendar day whose route covers the
// rider's pickup/drop in the published direction with enough free seats.
// Results are ordered by departure, earliest first.
func (s *searchService) Search(ctx context.Context, riderID string, req *models.SearchRidesRequest) ([]*models.RideResponse, error) {
	if req.PickupCity == req.DropCity {
		return nil, apperrors.ValidationError("pickup and drop city must differ")
	}

	candidates, err := s.rideRepo.SearchCandidates(ctx, req.Date, riderID, req.WomenOnly)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	results := make([]*models.RideResponse, 0, len(candidates))
	for _, ride := range candidates {
		departure, err := ride.DepartureAt()
		if err != nil {
			continue
		}
		if schedule.Classify(departure, now) == schedule.BucketPast {
			continue
		}
		if !route.Overlaps(ride.Route(), req.PickupCity, req.DropCity) {
			continue
		}

		requests, err := s.requestRepo.ListByRide(ctx, ride.ID)
		if err != nil {
			return nil, err
		}
		summary := Summarize(ride, requests)
		if summary.AvailableSeats < req.Passengers {
			continue
		}

		resp := ride.ToResponse()
		resp.AvailableSeats = summary.AvailableSeats
		resp.PendingCount = summary.PendingRequests
		if publisher, err := s.userRepo.GetByID(ctx, ride.PublisherID); err != nil {
			log.Printf("failed to load publisher %s for ride %s: %v", ride.PublisherID, ride.ID, err)
		} else if publisher != nil {
			resp.Publisher = publisher.ToResponse()
		}
		results = append(results, resp)
	}

	observability.SearchesTotal.Inc()
	return results, nil
}

// SearchNextDay is the same query shifted one calendar day forward.
func (s *searchService) SearchNextDay(ctx context.Context, riderID string, req *models.SearchRidesRequest) ([]*models.RideResponse, error) {
	day, err := time.ParseInLocation(schedule.DateLayout, req.Date, time.Local)
	if err != nil {
		return nil, apperrors.ValidationError("invalid search date")
	}

	shifted := *req
	shifted.Date = day.AddDate(0, 0, 1).Format(schedule.DateLayout)
	return s.Search(ctx, riderID, &shifted)
}
