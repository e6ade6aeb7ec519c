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
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/carapi"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/userapi"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
	"github.com/zatekoja/car-rental-platform/pkg/config"
)

const defaultPort = 5003

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
	observability.InitLogger("reservation-service", env)

	log.Info().
		Str("service", "reservation-service").
		Str("env", env).
		Msg("Starting reservation service")

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize metrics")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			"reservation-service",
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize the event bus
	eventBus := events.NewKafkaEventBus(&cfg.Kafka)
	defer func() {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}()
	log.Info().Str("broker", cfg.Kafka.Broker).Msg("Event bus initialized successfully")

	// Validator RPC clients for sibling services
	timeout := time.Duration(cfg.Services.TimeoutSeconds) * time.Second
	userClient := userapi.NewClient(cfg.Services.UserServiceURL, timeout)
	carClient := carapi.NewClient(cfg.Services.CarServiceURL, timeout)

	// Wire adapters, service, handler
	reservationAdapter := database.NewReservationAdapter(pgClient)
	reservationService := services.NewReservationService(
		reservationAdapter,
		userClient,
		carClient,
		eventBus,
	)
	reservationHandler := handlers.NewReservationHandler(reservationService)

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("POST /reservations", reservationHandler.CreateReservation)
	mux.HandleFunc("GET /reservations", reservationHandler.ListReservations)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"reservation-service"}`))
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
		log.Info().Str("address", serverAddr).Msg("Reservation service starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Reservation service shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Reservation service stopped")
}
