package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/car-rental-platform/internal/application/services"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
)

// fakeNotificationRepo mimics the notifications table: keyed by reservation
// id, duplicate inserts are silently dropped.
type fakeNotificationRepo struct {
	notifications map[string]*entities.Notification
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{notifications: make(map[string]*entities.Notification)}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *entities.Notification) error {
	if _, exists := r.notifications[n.ReservationID]; exists {
		return nil
	}
	r.notifications[n.ReservationID] = n
	return nil
}

func (r *fakeNotificationRepo) List(ctx context.Context) ([]*entities.Notification, error) {
	out := make([]*entities.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		out = append(out, n)
	}
	return out, nil
}

func TestNotificationHandle_RecordsConfirmation(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := services.NewNotificationService(repo)

	event := &entities.ReservationEvent{ID: "res-1", UserID: "user-1", CarID: "car-1"}

	err := svc.Handle(context.Background(), event)
	require.NoError(t, err)

	notification, ok := repo.notifications["res-1"]
	require.True(t, ok)
	assert.Equal(t, "Reservation res-1 confirmed for user user-1, car car-1", notification.Message)
}

func TestNotificationHandle_RedeliveryNotifiesOnce(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := services.NewNotificationService(repo)

	event := &entities.ReservationEvent{ID: "res-1", UserID: "user-1", CarID: "car-1"}

	require.NoError(t, svc.Handle(context.Background(), event))
	require.NoError(t, svc.Handle(context.Background(), event))

	notifications, err := svc.ListNotifications(context.Background())
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}
