package handler

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/linklift/linklift/internal/cache"
	"github.com/linklift/linklift/pkg/utils"
)

type CityHandler struct {
	cities cache.CityCatalog
}

func NewCityHandler(cities cache.CityCatalog) *CityHandler {
	return &CityHandler{cities: cities}
}

func (h *CityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cities", h.ListCities)
}

// GET /v1/cities
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.cities.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	sort.Strings(cities)

	utils.Success(w, http.StatusOK, map[string]interface{}{"cities": cities})
}
