package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/linklift/linklift/internal/middleware"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/service"
	"github.com/linklift/linklift/pkg/utils"
)

type RequestHandler struct {
	requestService service.RequestService
	validate       *validator.Validate
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{
		requestService: requestService,
		validate:       validator.New(),
	}
}

func (h *RequestHandler) RegisterRoutes(r chi.Router) {
	r.Post("/requests", h.CreateRequest)
	r.Get("/requests/my-requests", h.MyRequests)
	r.Put("/requests/{id}/approve", h.ApproveRequest)
	r.Put("/requests/{id}/reject", h.RejectRequest)
	r.Put("/requests/{id}/remove", h.RemovePassenger)
	r.Delete("/requests/{id}", h.CancelRequest)
}

// POST /v1/requests
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	created, err := h.requestService.Create(r.Context(), middleware.UserID(r.Context()), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, map[string]interface{}{
		"id":             created.ID,
		"ride_id":        created.RideID,
		"num_passengers": created.NumPassengers,
		"status":         created.Status,
	})
}

// GET /v1/requests/my-requests
func (h *RequestHandler) MyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListMine(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// PUT /v1/requests/{id}/approve
func (h *RequestHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestService.Approve, "request approved")
}

// PUT /v1/requests/{id}/reject
func (h *RequestHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestService.Reject, "request rejected")
}

// PUT /v1/requests/{id}/remove
func (h *RequestHandler) RemovePassenger(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestService.Remove, "passenger removed")
}

// DELETE /v1/requests/{id}
func (h *RequestHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.requestService.Cancel, "request cancelled")
}

func (h *RequestHandler) transition(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, actorID, requestID string) error, message string) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "invalid request id")
		return
	}

	if err := op(r.Context(), middleware.UserID(r.Context()), id); err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]string{"message": message})
}
