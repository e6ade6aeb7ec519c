package userapi_test

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
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/userapi"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

func TestGetUser_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rpc/users/user-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entities.User{ID: "user-1", Name: "Alice", Email: "alice@example.com"})
	}))
	defer server.Close()

	client := userapi.NewClient(server.URL, time.Second)
	user, err := client.GetUser(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Alice", user.Name)
}

func TestGetUser_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"User not found"}`))
	}))
	defer server.Close()

	client := userapi.NewClient(server.URL, time.Second)
	_, err := client.GetUser(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestGetUser_ServerErrorIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := userapi.NewClient(server.URL, time.Second)
	_, err := client.GetUser(context.Background(), "user-1")

	require.Error(t, err)
	// A failing user service is not the same as an absent user
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}

func TestGetUser_UnreachableIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing is listening anymore

	client := userapi.NewClient(server.URL, time.Second)
	_, err := client.GetUser(context.Background(), "user-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
}
