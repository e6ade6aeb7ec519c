package providers

import (
	"context"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
)

// TopicReservations is the stream all reservation events are published to.
const TopicReservations = "reservations"

// EventBus defines the producer side of the reservation event stream.
// Publish blocks until the broker acknowledges receipt, not until any
// consumer has processed the event.
type EventBus interface {
	// Publish appends an event to the topic
	Publish(ctx context.Context, topic string, event *entities.ReservationEvent) error

	// Close releases the producer's broker connections
	Close() error
}

// MessageHandler processes one raw message from a stream. Returning nil
// marks the message consumed; the broker may still redeliver messages whose
// commit was lost, so handlers must tolerate duplicates.
type MessageHandler func(ctx context.Context, payload []byte) error

// EventStream defines the consumer side: one named consumer group tailing a
// topic. Each group receives every event independently of other groups.
type EventStream interface {
	// Run polls the stream and invokes handler per message until ctx is
	// cancelled. The in-flight message is drained before Run returns.
	Run(ctx context.Context, handler MessageHandler) error

	// Close releases the consumer's broker connections
	Close() error
}
