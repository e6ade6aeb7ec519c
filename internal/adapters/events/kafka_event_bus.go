package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/providers"
	"github.com/zatekoja/car-rental-platform/pkg/config"
)

// KafkaEventBus implements the EventBus interface on a Kafka topic.
// WriteMessages blocks until the broker acknowledges the append, which is as
// far as the producer's responsibility extends; consumer progress is invisible
// to it.
type KafkaEventBus struct {
	writer *kafka.Writer
}

// NewKafkaEventBus creates a producer for the given broker
func NewKafkaEventBus(cfg *config.KafkaConfig) providers.EventBus {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Broker),
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaEventBus{writer: writer}
}

// Publish appends an event to the topic and waits for the broker ack
func (b *KafkaEventBus) Publish(ctx context.Context, topic string, event *entities.ReservationEvent) error {
	data, err := event.Encode()
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		// Keyed by car so events for one car stay on one partition, in order.
		Key:   []byte(event.CarID),
		Value: data,
	}

	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	log.Info().
		Str("topic", topic).
		Str("reservation_id", event.ID).
		Msg("Published reservation event")
	return nil
}

// Close releases the producer's broker connections
func (b *KafkaEventBus) Close() error {
	return b.writer.Close()
}

// KafkaEventStream implements the EventStream interface: one consumer group
// tailing a topic with at-least-once delivery. The message is committed only
// after the handler returns, so a crash mid-handle leads to redelivery.
type KafkaEventStream struct {
	reader *kafka.Reader
	group  string
}

// NewKafkaEventStream creates a group consumer for the given topic
func NewKafkaEventStream(cfg *config.KafkaConfig, topic, group string) providers.EventStream {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{cfg.Broker},
		Topic:       topic,
		GroupID:     group,
		StartOffset: kafka.FirstOffset,
	})
	return &KafkaEventStream{reader: reader, group: group}
}

// Run polls the stream until ctx is cancelled. The in-flight message is
// handled and committed before Run returns.
func (s *KafkaEventStream) Run(ctx context.Context, handler providers.MessageHandler) error {
	log.Info().Str("group", s.group).Msg("Consumer started")

	for {
		msg, err := s.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info().Str("group", s.group).Msg("Consumer stopping")
				return nil
			}
			return fmt.Errorf("failed to fetch message: %w", err)
		}

		// Handler errors never block the stream; the handler owns its own
		// failure routing. Commit uses a fresh context so an in-flight
		// message still commits during shutdown.
		if err := handler(ctx, msg.Value); err != nil {
			log.Error().Err(err).Str("group", s.group).Msg("Message handler failed")
		}

		commitCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.reader.CommitMessages(commitCtx, msg); err != nil {
			log.Error().Err(err).Str("group", s.group).Msg("Failed to commit message")
		}
		cancel()

		if ctx.Err() != nil {
			log.Info().Str("group", s.group).Msg("Consumer stopping")
			return nil
		}
	}
}

// Close releases the consumer's broker connections
func (s *KafkaEventStream) Close() error {
	return s.reader.Close()
}
