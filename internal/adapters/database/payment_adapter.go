package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// PaymentAdapter implements the PaymentRepository interface
type PaymentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPaymentAdapter creates a new payment adapter
func NewPaymentAdapter(client *postgres.Client) repositories.PaymentRepository {
	return &PaymentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a payment. The primary key is the reservation id and a
// duplicate insert is dropped, so a redelivered event cannot charge twice.
func (a *PaymentAdapter) Create(ctx context.Context, payment *entities.Payment) error {
	record := goqu.Record{
		"reservation_id": payment.ReservationID,
		"user_id":        payment.UserID,
		"amount":         payment.Amount,
		"created_at":     payment.CreatedAt,
	}

	query, args, err := a.db.Insert("payments").
		Rows(record).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create payment", err)
	}

	return nil
}

// List retrieves all payments
func (a *PaymentAdapter) List(ctx context.Context) ([]*entities.Payment, error) {
	query, args, err := a.db.Select("reservation_id", "user_id", "amount", "created_at").
		From("payments").
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list payments", err)
	}
	defer rows.Close()

	var payments []*entities.Payment
	for rows.Next() {
		payment := &entities.Payment{}
		if err := rows.Scan(
			&payment.ReservationID,
			&payment.UserID,
			&payment.Amount,
			&payment.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan payment", err)
		}
		payments = append(payments, payment)
	}

	return payments, nil
}
