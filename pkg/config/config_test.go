package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/car-rental-platform/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "reservations", cfg.Kafka.ReservationsTopic)
	assert.Equal(t, "payment-group", cfg.Kafka.PaymentGroup)
	assert.Equal(t, "notification-group", cfg.Kafka.NotificationGroup)
	assert.Equal(t, "http://localhost:5002", cfg.Services.UserServiceURL)
	assert.Equal(t, "http://localhost:5005", cfg.Services.CarServiceURL)
	assert.Equal(t, 5, cfg.Services.TimeoutSeconds)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("KAFKA_BROKER", "kafka:9093")
	t.Setenv("USER_SERVICE_URL", "http://users.internal:5002")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "kafka:9093", cfg.Kafka.Broker)
	assert.Equal(t, "http://users.internal:5002", cfg.Services.UserServiceURL)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestLoad_MalformedIntFallsBack(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.Database.Port)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "secret",
		Database: "car_rental",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=car_rental sslmode=disable",
		cfg.DatabaseDSN(),
	)
}

func TestRedisAddr(t *testing.T) {
	cfg := config.RedisConfig{Host: "cache", Port: 6379}
	assert.Equal(t, "cache:6379", cfg.RedisAddr())
}
