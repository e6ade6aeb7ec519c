package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

const defaultTimeout = 5 * time.Second

// ServiceClient aggregates the REST surfaces of the downstream services for
// the GraphQL schema. It holds no state beyond the base URLs; every resolver
// call is a fresh HTTP request.
type ServiceClient struct {
	userBaseURL        string
	carBaseURL         string
	reservationBaseURL string
	httpClient         *http.Client
}

// NewServiceClient creates a client over the three query/command services
func NewServiceClient(userBaseURL, carBaseURL, reservationBaseURL string, timeout time.Duration) *ServiceClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ServiceClient{
		userBaseURL:        userBaseURL,
		carBaseURL:         carBaseURL,
		reservationBaseURL: reservationBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListUsers fetches all users from the user service
func (c *ServiceClient) ListUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	if err := c.getJSON(ctx, c.userBaseURL+"/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListCars fetches all cars from the car service
func (c *ServiceClient) ListCars(ctx context.Context) ([]*entities.Car, error) {
	var cars []*entities.Car
	if err := c.getJSON(ctx, c.carBaseURL+"/cars", &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

// ListReservations fetches all reservations from the reservation service
func (c *ServiceClient) ListReservations(ctx context.Context) ([]*entities.Reservation, error) {
	var reservations []*entities.Reservation
	if err := c.getJSON(ctx, c.reservationBaseURL+"/reservations", &reservations); err != nil {
		return nil, err
	}
	return reservations, nil
}

// CreateReservation forwards a reservation request to the reservation
// service. The orchestration, including event publishing, happens there;
// the gateway only relays the outcome.
func (c *ServiceClient) CreateReservation(ctx context.Context, userID, carID string) (*entities.Reservation, error) {
	body, err := json.Marshal(map[string]string{
		"userId": userID,
		"carId":  carID,
	})
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode reservation request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.reservationBaseURL+"/reservations", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reservation request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUnavailableError("reservation service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated:
		var reservation entities.Reservation
		if err := json.NewDecoder(resp.Body).Decode(&reservation); err != nil {
			return nil, apperrors.NewInternalError("failed to decode reservation response", err)
		}
		return &reservation, nil
	case resp.StatusCode == http.StatusBadRequest:
		// The rejection reason is the user-facing message
		return nil, apperrors.NewValidationError(decodeErrorMessage(resp))
	default:
		return nil, apperrors.NewUnavailableError(
			fmt.Sprintf("reservation service returned status %d", resp.StatusCode), nil)
	}
}

func (c *ServiceClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewUnavailableError("service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apperrors.NewUnavailableError(
			fmt.Sprintf("service returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewInternalError("failed to decode response", err)
	}
	return nil
}

func decodeErrorMessage(resp *http.Response) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		return fmt.Sprintf("request rejected with status %d", resp.StatusCode)
	}
	return payload.Error
}
