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
	"github.com/zatekoja/car-rental-platform/internal/api/middleware"
	"github.com/zatekoja/car-rental-platform/internal/gateway"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
	"github.com/zatekoja/car-rental-platform/pkg/config"
)

const defaultPort = 5000

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
	observability.InitLogger("gateway", env)

	log.Info().
		Str("service", "gateway").
		Str("env", env).
		Msg("Starting gateway")

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
			"gateway",
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

	// Build the aggregated GraphQL schema over the downstream services
	timeout := time.Duration(cfg.Services.TimeoutSeconds) * time.Second
	serviceClient := gateway.NewServiceClient(
		cfg.Services.UserServiceURL,
		cfg.Services.CarServiceURL,
		cfg.Services.ReservationServiceURL,
		timeout,
	)

	schema, err := gateway.NewSchema(serviceClient)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build GraphQL schema")
	}

	router := gateway.NewRouter(schema)
	mux, err := router.SetupRoutes(
		cfg.Services.UserServiceURL,
		cfg.Services.CarServiceURL,
		cfg.Services.ReservationServiceURL,
		cfg.Services.PaymentServiceURL,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up routes")
	}

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
		log.Info().Str("address", serverAddr).Msg("Gateway starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Gateway shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Gateway stopped")
}
