package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/car-rental-platform/internal/adapters/database"
	"github.com/zatekoja/car-rental-platform/internal/adapters/events"
	"github.com/zatekoja/car-rental-platform/internal/application/services"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
	"github.com/zatekoja/car-rental-platform/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize structured logging
	env := os.Getenv("ENV")
	if env == "" {
		env = "production"
	}
	observability.InitLogger("notification-service", env)

	log.Info().
		Str("service", "notification-service").
		Str("env", env).
		Msg("Starting notification service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized successfully")

	// Wire adapters and the service
	notificationAdapter := database.NewNotificationAdapter(pgClient)
	failureAdapter := database.NewEventFailureAdapter(pgClient)
	notificationService := services.NewNotificationService(notificationAdapter)

	// Start the reservation consumer; this daemon serves no HTTP traffic
	stream := events.NewKafkaEventStream(&cfg.Kafka, cfg.Kafka.ReservationsTopic, cfg.Kafka.NotificationGroup)
	consumer := services.NewReservationConsumer(stream, notificationService, failureAdapter)

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		log.Info().
			Str("topic", cfg.Kafka.ReservationsTopic).
			Str("group", cfg.Kafka.NotificationGroup).
			Msg("Reservation consumer starting")
		if err := consumer.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Reservation consumer stopped with error")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Notification service shutting down...")

	// Stop the consumer: cancel its context, wait for it to drain, then close
	cancel()
	select {
	case <-consumerDone:
	case <-time.After(10 * time.Second):
		log.Warn().Msg("Timed out waiting for consumer to drain")
	}
	if err := consumer.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing consumer")
	}

	log.Info().Msg("Notification service stopped")
}
