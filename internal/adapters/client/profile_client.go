package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

// ProfileClient fetches display names from the user service over HTTP.
type ProfileClient struct {
	baseURL string
	client  *http.Client
}

func NewProfileClient(baseURL string) ports.ProfileClient {
	return &ProfileClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *ProfileClient) GetDisplayName(ctx context.Context, userID uuid.UUID) (string, error) {
	url := fmt.Sprintf("%s/users/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build profile request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("profile request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("profile request returned status %d", resp.StatusCode)
	}

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode profile response: %w", err)
	}
	return body.DisplayName, nil
}
