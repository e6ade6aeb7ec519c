package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// PaymentService defines the interface for payment operations
type PaymentService interface {
	CreatePayment(ctx context.Context, payment *entities.Payment) error
	ListPayments(ctx context.Context) ([]*entities.Payment, error)
}

// PaymentHandler handles payment requests
type PaymentHandler struct {
	service PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(service PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service: service,
	}
}

// CreatePayment handles POST /payments
func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var payment entities.Payment
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.CreatePayment(r.Context(), &payment); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			respondWithError(w, http.StatusBadRequest, appMessage(err))
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to create payment")
		return
	}

	respondWithJSON(w, http.StatusCreated, payment)
}

// ListPayments handles GET /payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to fetch payments")
		return
	}
	if payments == nil {
		payments = []*entities.Payment{}
	}
	respondWithJSON(w, http.StatusOK, payments)
}
