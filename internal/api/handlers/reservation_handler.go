package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// ReservationService defines the interface for reservation operations
type ReservationService interface {
	CreateReservation(ctx context.Context, userID, carID string) (*entities.Reservation, error)
	ListReservations(ctx context.Context) ([]*entities.Reservation, error)
}

// ReservationHandler handles reservation requests
type ReservationHandler struct {
	service ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(service ReservationService) *ReservationHandler {
	return &ReservationHandler{
		service: service,
	}
}

type createReservationRequest struct {
	UserID string `json:"userId"`
	CarID  string `json:"carId"`
}

// CreateReservation handles POST /reservations
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req createReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), req.UserID, req.CarID)
	if err != nil {
		switch apperrors.TypeOf(err) {
		case apperrors.ErrorTypeValidation, apperrors.ErrorTypeNotFound, apperrors.ErrorTypeConflict:
			// Rejections are user-visible outcomes with the reason attached
			respondWithError(w, http.StatusBadRequest, appMessage(err))
		default:
			respondWithError(w, http.StatusInternalServerError, appMessage(err))
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, reservation)
}

// ListReservations handles GET /reservations
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.ListReservations(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to fetch reservations")
		return
	}
	if reservations == nil {
		reservations = []*entities.Reservation{}
	}
	respondWithJSON(w, http.StatusOK, reservations)
}

// Helper functions

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// appMessage strips the internal error chain and returns only the
// user-facing message
func appMessage(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.Message
	}
	return err.Error()
}
