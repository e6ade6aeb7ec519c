package userapi

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

// HTTPClient calls the user service's validator RPC surface. A 404 from the
// service is application-level absence; any transport fault or non-2xx answer
// is an unavailable error so callers can distinguish the two.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a user service client with a bounded call timeout.
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

var _ providers.UserDirectory = (*HTTPClient)(nil)

// GetUser looks up a user by id.
func (c *HTTPClient) GetUser(ctx context.Context, id string) (*entities.User, error) {
	url := fmt.Sprintf("%s/rpc/users/%s", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user lookup request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUnavailableError("user service unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var user entities.User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, apperrors.NewUnavailableError("invalid response from user service", err)
		}
		return &user, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewNotFoundError("user not found")
	default:
		return nil, apperrors.NewUnavailableError(
			fmt.Sprintf("user service returned status %d", resp.StatusCode), nil)
	}
}
