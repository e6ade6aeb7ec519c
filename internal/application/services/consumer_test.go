package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/car-rental-platform/internal/application/services"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/providers"
)

// fakeStream replays a fixed set of payloads through the handler
type fakeStream struct {
	payloads [][]byte
	closed   bool
}

func (s *fakeStream) Run(ctx context.Context, handler providers.MessageHandler) error {
	for _, payload := range s.payloads {
		if err := handler(ctx, payload); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeFailureRepo struct {
	failures []*entities.EventFailure
}

func (r *fakeFailureRepo) Record(ctx context.Context, failure *entities.EventFailure) error {
	r.failures = append(r.failures, failure)
	return nil
}

type countingHandler struct {
	events []*entities.ReservationEvent
	err    error
}

func (h *countingHandler) Name() string {
	return "counting"
}

func (h *countingHandler) Handle(ctx context.Context, event *entities.ReservationEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func TestConsumer_DeliversDecodedEvents(t *testing.T) {
	event := &entities.ReservationEvent{ID: "res-1", UserID: "user-1", CarID: "car-1"}
	payload, err := event.Encode()
	require.NoError(t, err)

	stream := &fakeStream{payloads: [][]byte{payload}}
	handler := &countingHandler{}
	failures := &fakeFailureRepo{}

	consumer := services.NewReservationConsumer(stream, handler, failures)
	require.NoError(t, consumer.Run(context.Background()))

	require.Len(t, handler.events, 1)
	assert.Equal(t, "res-1", handler.events[0].ID)
	assert.Empty(t, failures.failures)
}

func TestConsumer_MalformedPayloadGoesToDeadLetter(t *testing.T) {
	stream := &fakeStream{payloads: [][]byte{[]byte("not json"), []byte(`{"userId":"u"}`)}}
	handler := &countingHandler{}
	failures := &fakeFailureRepo{}

	consumer := services.NewReservationConsumer(stream, handler, failures)

	// Bad messages are absorbed, never propagated back to the stream
	require.NoError(t, consumer.Run(context.Background()))

	assert.Empty(t, handler.events)
	require.Len(t, failures.failures, 2)
	assert.Equal(t, providers.TopicReservations, failures.failures[0].Topic)
	assert.Equal(t, "counting", failures.failures[0].Consumer)
	assert.Equal(t, []byte("not json"), failures.failures[0].Payload)
	assert.NotEmpty(t, failures.failures[0].Reason)
}

func TestConsumer_HandlerErrorGoesToDeadLetter(t *testing.T) {
	event := &entities.ReservationEvent{ID: "res-1", UserID: "user-1", CarID: "car-1"}
	payload, err := event.Encode()
	require.NoError(t, err)

	stream := &fakeStream{payloads: [][]byte{payload}}
	handler := &countingHandler{err: errors.New("db write failed")}
	failures := &fakeFailureRepo{}

	consumer := services.NewReservationConsumer(stream, handler, failures)
	require.NoError(t, consumer.Run(context.Background()))

	require.Len(t, failures.failures, 1)
	assert.Contains(t, failures.failures[0].Reason, "db write failed")
}

func TestConsumer_CloseReleasesStream(t *testing.T) {
	stream := &fakeStream{}
	consumer := services.NewReservationConsumer(stream, &countingHandler{}, &fakeFailureRepo{})

	require.NoError(t, consumer.Close())
	assert.True(t, stream.closed)
}
