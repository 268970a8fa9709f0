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

type ChatHandler struct {
	chatService  service.ChatService
	alertService service.AlertService
	validate     *validator.Validate
}

func NewChatHandler(chatService service.ChatService, alertService service.AlertService) *ChatHandler {
	return &ChatHandler{
		chatService:  chatService,
		alertService: alertService,
		validate:     validator.New(),
	}
}

func (h *ChatHandler) RegisterRoutes(r chi.Router) {
	r.Get("/rides/{id}/messages", h.ListMessages)
	r.Post("/rides/{id}/messages", h.PostMessage)
	r.Post("/rides/{id}/sos", h.TriggerSOS)
}

// GET /v1/rides/{id}/messages
func (h *ChatHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	rideID := chi.URLParam(r, "id")
	if !utils.IsValidUUID(rideID) {
		utils.BadRequest(w, "invalid ride id")
		return
	}

	messages, err := h.chatService.List(r.Context(), rideID)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]interface{}{"messages": messages})
}

// POST /v1/rides/{id}/messages
func (h *ChatHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	rideID := chi.URLParam(r, "id")
	if !utils.IsValidUUID(rideID) {
		utils.BadRequest(w, "invalid ride id")
		return
	}

	var req models.PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	msg, err := h.chatService.Post(r.Context(), rideID, middleware.UserID(r.Context()), req.Body)
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, map[string]interface{}{"message": msg})
}

// POST /v1/rides/{id}/sos
func (h *ChatHandler) TriggerSOS(w http.ResponseWriter, r *http.Request) {
	rideID := chi.URLParam(r, "id")
	if !utils.IsValidUUID(rideID) {
		utils.BadRequest(w, "invalid ride id")
		return
	}

	message, err := h.alertService.Trigger(r.Context(), rideID, middleware.UserID(r.Context()))
	if err != nil {
		handleError(w, err)
		return
	}

	utils.Success(w, http.StatusOK, map[string]string{
		"message": message,
		"ride_id": rideID,
	})
}
