package services

import (
	"context"
	"time"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// defaultChargeAmount is the flat charge captured per reservation.
const defaultChargeAmount = 100

// PaymentService captures a payment for each reservation event. Writes are
// keyed by reservation id, so a redelivered event charges at most once.
type PaymentService struct {
	repo repositories.PaymentRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo repositories.PaymentRepository) *PaymentService {
	return &PaymentService{repo: repo}
}

// Name identifies this consumer in dead-letter records
func (s *PaymentService) Name() string {
	return "payment"
}

// Handle captures the charge for one reservation event
func (s *PaymentService) Handle(ctx context.Context, event *entities.ReservationEvent) error {
	payment := &entities.Payment{
		ReservationID: event.ID,
		UserID:        event.UserID,
		Amount:        defaultChargeAmount,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("reservation_id", event.ID).
		Str("user_id", event.UserID).
		Float64("amount", payment.Amount).
		Msg("Payment processed")
	return nil
}

// CreatePayment records a payment submitted through the REST surface
func (s *PaymentService) CreatePayment(ctx context.Context, payment *entities.Payment) error {
	if payment.ReservationID == "" || payment.UserID == "" {
		return apperrors.NewValidationError("missing reservationId or userId")
	}
	if payment.Amount <= 0 {
		return apperrors.NewValidationError("amount must be positive")
	}
	payment.CreatedAt = time.Now().UTC()
	return s.repo.Create(ctx, payment)
}

// ListPayments returns all payments
func (s *PaymentService) ListPayments(ctx context.Context) ([]*entities.Payment, error) {
	return s.repo.List(ctx)
}
