package carapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/providers"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// HTTPClient calls the car service's validator RPC surface.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a car service client with a bounded call timeout.
func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

var _ providers.CarCatalog = (*HTTPClient)(nil)

// GetCar looks up a car by id.
func (c *HTTPClient) GetCar(ctx context.Context, id string) (*entities.Car, error) {
	var car entities.Car
	if err := c.get(ctx, fmt.Sprintf("/rpc/cars/%s", id), "car not found", &car); err != nil {
		return nil, err
	}
	return &car, nil
}

// CheckAvailability asks the car service whether the car exists and is
// unreserved. The answer is a snapshot; nothing is locked.
func (c *HTTPClient) CheckAvailability(ctx context.Context, carID string) (*providers.Availability, error) {
	var availability providers.Availability
	if err := c.get(ctx, fmt.Sprintf("/rpc/cars/%s/availability", carID), "car not found", &availability); err != nil {
		return nil, err
	}
	return &availability, nil
}

func (c *HTTPClient) get(ctx context.Context, path, notFoundMsg string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to build car service request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewUnavailableError("car service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return apperrors.NewUnavailableError("invalid response from car service", err)
		}
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError(notFoundMsg)
	default:
		return apperrors.NewUnavailableError(
			fmt.Sprintf("car service returned status %d", resp.StatusCode), nil)
	}
}
