package carapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/carapi"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

func TestGetCar_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc/cars/car-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entities.Car{ID: "car-1", Model: "Civic", PricePerDay: 50})
	}))
	defer server.Close()

	client := carapi.NewClient(server.URL, time.Second)
	car, err := client.GetCar(context.Background(), "car-1")

	require.NoError(t, err)
	assert.Equal(t, "Civic", car.Model)
}

func TestCheckAvailability_ParsesAnswer(t *testing.T) {
	for _, tc := range []struct {
		name      string
		body      string
		available bool
	}{
		{"available", `{"isAvailable":true,"message":"Car is available"}`, true},
		{"reserved", `{"isAvailable":false,"message":"Car is already reserved"}`, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/rpc/cars/car-1/availability", r.URL.Path)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := carapi.NewClient(server.URL, time.Second)
			availability, err := client.CheckAvailability(context.Background(), "car-1")

			require.NoError(t, err)
			assert.Equal(t, tc.available, availability.IsAvailable)
		})
	}
}

func TestCheckAvailability_UnknownCarIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Car not found"}`))
	}))
	defer server.Close()

	client := carapi.NewClient(server.URL, time.Second)
	_, err := client.CheckAvailability(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCheckAvailability_UnreachableIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := carapi.NewClient(server.URL, time.Second)
	_, err := client.CheckAvailability(context.Background(), "car-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}
