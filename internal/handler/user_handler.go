package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/linklift/linklift/internal/errors"
	"github.com/linklift/linklift/internal/models"
	"github.com/linklift/linklift/internal/repository"
	"github.com/linklift/linklift/pkg/utils"
)

type UserHandler struct {
	userRepo repository.UserRepository
	validate *validator.Validate
}

func NewUserHandler(userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{
		userRepo: userRepo,
		validate: validator.New(),
	}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Post("/users", h.CreateUser)
	r.Get("/users/{id}", h.GetUser)
}

// POST /v1/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		utils.BadRequest(w, err.Error())
		return
	}

	existing, err := h.userRepo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		handleError(w, err)
		return
	}
	if existing != nil {
		utils.Error(w, apperrors.Conflict("email already registered"))
		return
	}

	user := &models.User{
		Name:    req.Name,
		Email:   req.Email,
		Year:    req.Year,
		College: req.College,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	if err := h.userRepo.Create(r.Context(), user); err != nil {
		handleError(w, err)
		return
	}

	utils.Created(w, user.ToResponse())
}

// GET /v1/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !utils.IsValidUUID(id) {
		utils.BadRequest(w, "invalid user id")
		return
	}

	user, err := h.userRepo.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	if user == nil {
		utils.NotFound(w, "user")
		return
	}

	utils.Success(w, http.StatusOK, user.ToResponse())
}
