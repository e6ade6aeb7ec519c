package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/car-rental-platform/internal/adapters/database"
	"github.com/zatekoja/car-rental-platform/internal/adapters/events"
	"github.com/zatekoja/car-rental-platform/internal/api/handlers"
	"github.com/zatekoja/car-rental-platform/internal/api/middleware"
	"github.com/zatekoja/car-rental-platform/internal/application/services"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
	"github.com/zatekoja/car-rental-platform/pkg/config"
)

const defaultPort = 5004

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if os.Getenv("SERVER_PORT") == "" {
		cfg.Server.Port = defaultPort
	}

	// Initialize structured logging
	env := os.Getenv("ENV")
	if env == "" {
		env = "production"
	}
	observability.InitLogger("payment-service", env)

	log.Info().
		Str("service", "payment-service").
		Str("env", env).
		Msg("Starting payment service")

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize metrics")
	}

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
	paymentAdapter := database.NewPaymentAdapter(pgClient)
	failureAdapter := database.NewEventFailureAdapter(pgClient)
	paymentService := services.NewPaymentService(paymentAdapter)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Start the reservation consumer
	stream := events.NewKafkaEventStream(&cfg.Kafka, cfg.Kafka.ReservationsTopic, cfg.Kafka.PaymentGroup)
	consumer := services.NewReservationConsumer(stream, paymentService, failureAdapter)

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		log.Info().
			Str("topic", cfg.Kafka.ReservationsTopic).
			Str("group", cfg.Kafka.PaymentGroup).
			Msg("Reservation consumer starting")
		if err := consumer.Run(ctx); err != nil {
			log.Error().Err(err).Msg("Reservation consumer stopped with error")
		}
	}()

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("POST /payments", paymentHandler.CreatePayment)
	mux.HandleFunc("GET /payments", paymentHandler.ListPayments)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"payment-service"}`))
	})

	httpHandler := middleware.ObservabilityMiddleware(metrics)(
		middleware.LoggingMiddleware(
			middleware.CORSMiddleware(mux),
		),
	)

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("address", serverAddr).Msg("Payment service starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Payment service shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	// Stop the consumer: cancel its context, wait for it to drain, then close
	cancel()
	select {
	case <-consumerDone:
	case <-shutdownCtx.Done():
		log.Warn().Msg("Timed out waiting for consumer to drain")
	}
	if err := consumer.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing consumer")
	}

	log.Info().Msg("Payment service stopped")
}
