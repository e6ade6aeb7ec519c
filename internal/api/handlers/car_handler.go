package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/providers"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// CarService defines the interface for car operations
type CarService interface {
	CreateCar(ctx context.Context, model string, pricePerDay float64) (*entities.Car, error)
	GetCar(ctx context.Context, id string) (*entities.Car, error)
	ListCars(ctx context.Context) ([]*entities.Car, error)
	CheckAvailability(ctx context.Context, carID string) (*providers.Availability, error)
}

// CarHandler handles car requests, including the validator RPC surface
type CarHandler struct {
	service CarService
}

// NewCarHandler creates a new car handler
func NewCarHandler(service CarService) *CarHandler {
	return &CarHandler{
		service: service,
	}
}

type createCarRequest struct {
	Model       string  `json:"model"`
	PricePerDay float64 `json:"pricePerDay"`
}

// CreateCar handles POST /cars
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	var req createCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	car, err := h.service.CreateCar(r.Context(), req.Model, req.PricePerDay)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			respondWithError(w, http.StatusBadRequest, appMessage(err))
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to create car")
		return
	}

	respondWithJSON(w, http.StatusCreated, car)
}

// ListCars handles GET /cars
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.service.ListCars(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to fetch cars")
		return
	}
	if cars == nil {
		cars = []*entities.Car{}
	}
	respondWithJSON(w, http.StatusOK, cars)
}

// GetCarRPC handles GET /rpc/cars/{id}
func (h *CarHandler) GetCarRPC(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "car ID is required")
		return
	}

	car, err := h.service.GetCar(r.Context(), id)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			respondWithError(w, http.StatusNotFound, "Car not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, car)
}

// CheckAvailabilityRPC handles GET /rpc/cars/{id}/availability
func (h *CarHandler) CheckAvailabilityRPC(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "car ID is required")
		return
	}

	availability, err := h.service.CheckAvailability(r.Context(), id)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			respondWithError(w, http.StatusNotFound, "Car not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, availability)
}
