package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

// ContentClient fetches content metadata from the content service. Callers
// treat any error as a signal to fall back to placeholder metadata.
type ContentClient struct {
	baseURL string
	client  *http.Client
}

func NewContentClient(baseURL string) ports.ContentClient {
	return &ContentClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 3 * time.Second},
	}
}

func (c *ContentClient) GetByID(ctx context.Context, contentID string) (*domain.ContentDetails, error) {
	u := fmt.Sprintf("%s/content/%s", c.baseURL, url.PathEscape(contentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build content request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("content request returned status %d", resp.StatusCode)
	}

	details := &domain.ContentDetails{}
	if err := json.NewDecoder(resp.Body).Decode(details); err != nil {
		return nil, fmt.Errorf("failed to decode content response: %w", err)
	}
	return details, nil
}
