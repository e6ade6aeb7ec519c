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
	"github.com/zatekoja/car-rental-platform/internal/adapters/cache"
	"github.com/zatekoja/car-rental-platform/internal/adapters/database"
	"github.com/zatekoja/car-rental-platform/internal/api/handlers"
	"github.com/zatekoja/car-rental-platform/internal/api/middleware"
	"github.com/zatekoja/car-rental-platform/internal/application/services"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/redis"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
	"github.com/zatekoja/car-rental-platform/pkg/config"
)

const defaultPort = 5005

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
	observability.InitLogger("car-service", env)

	log.Info().
		Str("service", "car-service").
		Str("env", env).
		Msg("Starting car service")

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client")
	} else {
		defer redisClient.Close()
		log.Info().Msg("Redis client initialized successfully")
	}

	// Wire adapters; wrap the car repository with caching when Redis is up
	baseCarAdapter := database.NewCarAdapter(pgClient)
	var carAdapter repositories.CarRepository
	if redisClient != nil {
		cacheProvider := cache.NewRedisAdapter(redisClient)
		carAdapter = database.NewCachedCarAdapter(baseCarAdapter, cacheProvider)
		log.Info().Msg("Car adapter wrapped with caching layer")
	} else {
		carAdapter = baseCarAdapter
		log.Warn().Msg("Car adapter running without cache (Redis unavailable)")
	}

	reservationAdapter := database.NewReservationAdapter(pgClient)

	carService := services.NewCarService(carAdapter, reservationAdapter)
	carHandler := handlers.NewCarHandler(carService)

	// Set up HTTP routes
	mux := http.NewServeMux()
	mux.HandleFunc("POST /cars", carHandler.CreateCar)
	mux.HandleFunc("GET /cars", carHandler.ListCars)
	mux.HandleFunc("GET /rpc/cars/{id}", carHandler.GetCarRPC)
	mux.HandleFunc("GET /rpc/cars/{id}/availability", carHandler.CheckAvailabilityRPC)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"car-service"}`))
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
		log.Info().Str("address", serverAddr).Msg("Car service starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Car service shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Car service stopped")
}
