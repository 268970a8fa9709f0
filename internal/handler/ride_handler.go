package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/linklift/linklift/internal/middleware"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/service"
	"github.com/linklift/linklift/pkg/utils"
)

type RideHandler struct {
	rideService   service.RideService
	searchService service.SearchService
	validate      *validator.Validate
}

func NewRideHandler(rideService service.RideService, searchService service.SearchService) *RideHandler {
	return &RideHandler{
		rideService:   rideService,
		searchService: searchService,
		validate:      validator.New(),
	}
}

func (h *RideHandler) RegisterRoutes(r chi.Router) {
	r.Post("/rides", h.PublishRide)
	r.Post("/rides/search", h.SearchRides)
	r.Get("/rides/my-published", h.MyPublishedRides)
	r.Get("/rides/history", h.RideHistory)
	r.Get("/rides/{id}", h.GetRide)
	r.Delete("/rides/{id}", h.CancelRide)
}

// POST /v1/rides
func (h *RideHandler) PublishRide(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	ride, err := h.rideService.Publish(r.Context(), middleware.UserID(r.Context()), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, ride.ToResponse())
}

// POST /v1/rides/search
func (h *RideHandler) SearchRides(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRidesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	callerID := middleware.UserID(r.Context())

	var (
		rides []*models.RideResponse
		err   error
	)
	if req.NextDay {
		rides, err = h.searchService.SearchNextDay(r.Context(), callerID, &req)
	} else {
		rides, err = h.searchService.Search(r.Context(), callerID, &req)
	}
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]interface{}{"rides": rides})
}

// GET /v1/rides/my-published
func (h *RideHandler) MyPublishedRides(w http.ResponseWriter, r *http.Request) {
	rides, err := h.rideService.ListPublished(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]interface{}{"rides": rides})
}

// GET /v1/rides/history
func (h *RideHandler) RideHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.rideService.History(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, history)
}

// GET /v1/rides/{id}
func (h *RideHandler) GetRide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "invalid ride id")
		return
	}

	details, err := h.rideService.Get(r.Context(), middleware.UserID(r.Context()), id)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, details)
}

// DELETE /v1/rides/{id}
func (h *RideHandler) CancelRide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "invalid ride id")
		return
	}

	if err := h.rideService.Cancel(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]string{
		"status":  "cancelled",
		"message": "ride cancelled successfully",
	})
}
