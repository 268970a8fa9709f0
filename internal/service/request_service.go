package service

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/linklift/linklift/internal/errors"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/observability"
	"github.com/linklift/linklift/internal/repository"
	"github.com/linklift/linklift/internal/route"
	"github.com/linklift/linklift/internal/schedule"
	"github.com/linklift/linklift/internal/types"
)

type RequestService interface {
	Create(ctx context.Context, riderID string, req *models.CreateRequestRequest) (*models.Request, error)
	Approve(ctx context.Context, publisherID, requestID string) error
	Reject(ctx context.Context, publisherID, requestID string) error
	Cancel(ctx context.Context, riderID, requestID string) error
	Remove(ctx context.Context, publisherID, requestID string) error
	ListMine(ctx context.Context, riderID string) ([]*models.RequestedRide, error)
}

type requestService struct {
	db          *sqlx.DB
	rideRepo    repository.RideRepository
	requestRepo repository.RequestRepository
	userRepo    repository.UserRepository
	lockWindow  time.Duration
}

func NewRequestService(
	db *sqlx.DB,
	rideRepo repository.RideRepository,
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	lockWindow time.Duration,
) RequestService {
	if lockWindow <= 0 {
		lockWindow = schedule.DefaultLockWindow
	}
	return &requestService{
		db:          db,
		rideRepo:    rideRepo,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		lockWindow:  lockWindow,
	}
}

// Create registers a pending seat request on a ride. The ride row lock
// serializes the capacity and duplicate checks against every other mutation
// of the same ride's request set.
func (s *requestService) Create(ctx context.Context, riderID string, dto *models.CreateRequestRequest) (*models.Request, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	ride, err := s.rideRepo.GetByIDForUpdate(ctx, tx, dto.RideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, apperrors.NotFound("ride")
	}

	requests, err := s.requestRepo.ListByRideTx(ctx, tx, ride.ID)
	if err != nil {
		return nil, err
	}

	if err := checkCreate(ride, requests, riderID, dto); err != nil {
		return nil, err
	}

	req := &models.Request{
		RideID:        ride.ID,
		RiderID:       riderID,
		NumPassengers: dto.NumPassengers,
		PickupCity:    dto.PickupCity,
		PickupAddress: dto.PickupAddress,
		DropCity:      dto.DropCity,
		DropAddress:   dto.DropAddress,
	}
	if dto.PriceOffer != nil {
		req.PriceOffer = types.MoneyFrom(*dto.PriceOffer)
	}

	if err := s.requestRepo.CreateTx(ctx, tx, req); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	observability.RequestTransitionsTotal.WithLabelValues("create").Inc()
	return req, nil
}

// Approve moves a pending request to approved, publisher-only. Fails with
// CapacityExceeded when approving would overdraw the ride's seats; state is
// left untouched in that case.
func (s *requestService) Approve(ctx context.Context, publisherID, requestID string) error {
	err := s.withRideLock(ctx, requestID, func(tx *sqlx.Tx, ride *models.Ride, req *models.Request, requests []*models.Request) error {
		if err := checkApprove(ride, req, requests, publisherID); err != nil {
			return err
		}
		return s.requestRepo.UpdateStatusTx(ctx, tx, req.ID, models.RequestStatusApproved)
	})
	if err == nil {
		observability.RequestTransitionsTotal.WithLabelValues("approve").Inc()
	}
	return err
}

// Reject moves a pending request to rejected, publisher-only. Seat counts are
// unaffected.
func (s *requestService) Reject(ctx context.Context, publisherID, requestID string) error {
	err := s.withRideLock(ctx, requestID, func(tx *sqlx.Tx, ride *models.Ride, req *models.Request, _ []*models.Request) error {
		if err := checkReject(ride, req, publisherID); err != nil {
			return err
		}
		return s.requestRepo.UpdateStatusTx(ctx, tx, req.ID, models.RequestStatusRejected)
	})
	if err == nil {
		observability.RequestTransitionsTotal.WithLabelValues("reject").Inc()
	}
	return err
}

// Cancel deletes the rider's own request. An approved request cannot be
// cancelled inside the lock window; a rejected one is already resolved.
func (s *requestService) Cancel(ctx context.Context, riderID, requestID string) error {
	err := s.withRideLock(ctx, requestID, func(tx *sqlx.Tx, ride *models.Ride, req *models.Request, _ []*models.Request) error {
		departure, err := ride.DepartureAt()
		if err != nil {
			return err
		}
		if err := checkCancel(req, riderID, departure, time.Now(), s.lockWindow); err != nil {
			return err
		}
		return s.requestRepo.DeleteTx(ctx, tx, req.ID)
	})
	if err == nil {
		observability.RequestTransitionsTotal.WithLabelValues("cancel").Inc()
	}
	return err
}

// Remove deletes an approved request, publisher-only, freeing its seats.
// Blocked inside the lock window.
func (s *requestService) Remove(ctx context.Context, publisherID, requestID string) error {
	err := s.withRideLock(ctx, requestID, func(tx *sqlx.Tx, ride *models.Ride, req *models.Request, _ []*models.Request) error {
		departure, err := ride.DepartureAt()
		if err != nil {
			return err
		}
		if err := checkRemove(ride, req, publisherID, departure, time.Now(), s.lockWindow); err != nil {
			return err
		}
		return s.requestRepo.DeleteTx(ctx, tx, req.ID)
	})
	if err == nil {
		observability.RequestTransitionsTotal.WithLabelValues("remove").Inc()
	}
	return err
}

func (s *requestService) ListMine(ctx context.Context, riderID string) ([]*models.RequestedRide, error) {
	requests, err := s.requestRepo.ListByRider(ctx, riderID)
	if err != nil {
		return nil, err
	}

	result := make([]*models.RequestedRide, 0, len(requests))
	for _, req := range requests {
		ride, err := s.rideRepo.GetByID(ctx, req.RideID)
		if err != nil {
			return nil, err
		}
		if ride == nil {
			// Ride cancelled out from under the request; skip the orphan.
			continue
		}

		rideResp := ride.ToResponse()
		if publisher, err := s.userRepo.GetByID(ctx, ride.PublisherID); err != nil {
			log.Printf("failed to load publisher %s for ride %s: %v", ride.PublisherID, ride.ID, err)
		} else if publisher != nil {
			rideResp.Publisher = publisher.ToResponse()
		}

		result = append(result, &models.RequestedRide{
			Request: req.ToResponse(ride.CostPerPerson),
			Ride:    rideResp,
		})
	}
	return result, nil
}

// withRideLock resolves a request to its ride, takes the ride row lock and
// re-reads the request under it, so the callback sees a state no concurrent
// transition can invalidate. Either the whole callback commits or nothing
// does.
func (s *requestService) withRideLock(ctx context.Context, requestID string, fn func(tx *sqlx.Tx, ride *models.Ride, req *models.Request, requests []*models.Request) error) error {
	stale, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if stale == nil {
		return apperrors.NotFound("request")
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ride, err := s.rideRepo.GetByIDForUpdate(ctx, tx, stale.RideID)
	if err != nil {
		return err
	}
	if ride == nil {
		return apperrors.NotFound("ride")
	}

	req, err := s.requestRepo.GetByIDTx(ctx, tx, requestID)
	if err != nil {
		return err
	}
	if req == nil {
		// Deleted while we waited for the lock.
		return apperrors.NotFound("request")
	}

	requests, err := s.requestRepo.ListByRideTx(ctx, tx, ride.ID)
	if err != nil {
		return err
	}

	if err := fn(tx, ride, req, requests); err != nil {
		return err
	}
	return tx.Commit()
}

// checkApprove applies every precondition for approving a pending request.
// Capacity is evaluated against the derived summary so an approval can never
// overdraw the ride's seats.
func checkApprove(ride *models.Ride, req *models.Request, requests []*models.Request, publisherID string) error {
	if ride.PublisherID != publisherID {
		return apperrors.NotAuthorized("only the ride publisher can approve requests")
	}
	if !req.CanTransitionTo(models.RequestStatusApproved) {
		return apperrors.InvalidTransition(req.Status, models.RequestStatusApproved)
	}
	if Summarize(ride, requests).AvailableSeats < req.NumPassengers {
		return apperrors.CapacityExceeded()
	}
	return nil
}

// checkReject applies every precondition for rejecting a pending request.
func checkReject(ride *models.Ride, req *models.Request, publisherID string) error {
	if ride.PublisherID != publisherID {
		return apperrors.NotAuthorized("only the ride publisher can reject requests")
	}
	if !req.CanTransitionTo(models.RequestStatusRejected) {
		return apperrors.InvalidTransition(req.Status, models.RequestStatusRejected)
	}
	return nil
}

// checkCancel applies every precondition for a rider cancelling their own
// request. An approved request cannot be cancelled inside the lock window; a
// rejected one is already resolved.
func checkCancel(req *models.Request, riderID string, departure, now time.Time, window time.Duration) error {
	if req.RiderID != riderID {
		return apperrors.NotAuthorized("only the requesting rider can cancel a request")
	}
	if req.Status == models.RequestStatusRejected {
		return apperrors.InvalidState("request has already been resolved")
	}
	if req.Status == models.RequestStatusApproved && schedule.WithinLockWindow(departure, now, window) {
		return apperrors.TooLateToCancel()
	}
	return nil
}

// checkRemove applies every precondition for the publisher removing an
// approved passenger. Blocked inside the lock window.
func checkRemove(ride *models.Ride, req *models.Request, publisherID string, departure, now time.Time, window time.Duration) error {
	if ride.PublisherID != publisherID {
		return apperrors.NotAuthorized("only the ride publisher can remove passengers")
	}
	if req.Status != models.RequestStatusApproved {
		return apperrors.InvalidState("only approved requests can be removed")
	}
	if schedule.WithinLockWindow(departure, now, window) {
		return apperrors.TooLateToRemove()
	}
	return nil
}

// checkCreate applies every precondition for a new seat request.
func checkCreate(ride *models.Ride, requests []*models.Request, riderID string, dto *models.CreateRequestRequest) error {
	if ride.PublisherID == riderID {
		return apperrors.BadRequest("cannot request a seat on your own ride")
	}
	if !route.Overlaps(ride.Route(), dto.PickupCity, dto.DropCity) {
		return apperrors.ValidationError("requested pickup and drop are not a forward segment of the ride route")
	}
	for _, req := range requests {
		if req.RiderID == riderID && req.IsActive() {
			return apperrors.DuplicateRequest()
		}
	}
	if Summarize(ride, requests).AvailableSeats < dto.NumPassengers {
		return apperrors.CapacityExceeded()
	}
	return nil
}
