package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/providers"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
)

// EventHandler processes one decoded reservation event
type EventHandler interface {
	Name() string
	Handle(ctx context.Context, event *entities.ReservationEvent) error
}

// ReservationConsumer drives one consumer group over the reservation stream.
// Decode and handler failures are absorbed: the message is recorded in the
// dead-letter store, committed, and the stream moves on. Nothing propagates
// back to the producer.
type ReservationConsumer struct {
	stream   providers.EventStream
	handler  EventHandler
	failures repositories.EventFailureRepository
}

// NewReservationConsumer creates a consumer for the given stream and handler
func NewReservationConsumer(
	stream providers.EventStream,
	handler EventHandler,
	failures repositories.EventFailureRepository,
) *ReservationConsumer {
	return &ReservationConsumer{
		stream:   stream,
		handler:  handler,
		failures: failures,
	}
}

// Run processes messages until ctx is cancelled
func (c *ReservationConsumer) Run(ctx context.Context) error {
	return c.stream.Run(ctx, c.handleMessage)
}

// Close releases the underlying stream
func (c *ReservationConsumer) Close() error {
	return c.stream.Close()
}

func (c *ReservationConsumer) handleMessage(ctx context.Context, payload []byte) error {
	event, err := entities.DecodeReservationEvent(payload)
	if err != nil {
		c.recordFailure(ctx, payload, err)
		return nil
	}

	if err := c.handler.Handle(ctx, event); err != nil {
		c.recordFailure(ctx, payload, err)
		return nil
	}

	return nil
}

// recordFailure writes the dead-letter row. If even that fails, the message
// is logged and lost; the consumer never stalls the stream.
func (c *ReservationConsumer) recordFailure(ctx context.Context, payload []byte, cause error) {
	logger := observability.LoggerFromContext(ctx)
	logger.Error().
		Err(cause).
		Str("consumer", c.handler.Name()).
		Msg("Failed to process reservation event")

	failure := &entities.EventFailure{
		ID:         uuid.New().String(),
		Topic:      providers.TopicReservations,
		Consumer:   c.handler.Name(),
		Payload:    payload,
		Reason:     cause.Error(),
		OccurredAt: time.Now().UTC(),
	}

	if err := c.failures.Record(ctx, failure); err != nil {
		logger.Error().
			Err(err).
			Str("consumer", c.handler.Name()).
			Msg("Failed to record event failure")
	}
}
