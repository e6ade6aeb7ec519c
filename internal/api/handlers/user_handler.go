package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// UserService defines the interface for user operations
type UserService interface {
	CreateUser(ctx context.Context, name, email string) (*entities.User, error)
	GetUser(ctx context.Context, id string) (*entities.User, error)
	ListUsers(ctx context.Context) ([]*entities.User, error)
}

// UserHandler handles user requests, including the validator RPC surface
// other services call to confirm a user exists
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	user, err := h.service.CreateUser(r.Context(), req.Name, req.Email)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			respondWithError(w, http.StatusBadRequest, appMessage(err))
			return
		}
		respondWithError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to fetch users")
		return
	}
	if users == nil {
		users = []*entities.User{}
	}
	respondWithJSON(w, http.StatusOK, users)
}

// GetUserRPC handles GET /rpc/users/{id}. A 404 means the id is well-formed
// but absent; callers treat any other failure as the service being unreachable.
func (h *UserHandler) GetUserRPC(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}
