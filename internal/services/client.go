// HTTP client for the enrichment service, consumed by the presentation layer
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/replay/internal/models"
	"github.com/desertthunder/replay/internal/shared"
)

// Client calls a running enrichment service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the enrichment service at baseURL.
func NewClient(baseURL string, client *http.Client) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// HealthStatus reports service liveness and, when a cache is configured,
// cache reachability.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Cache   string `json:"cache,omitempty"`
}

func (c *Client) doRequest(ctx context.Context, path string, result any) error {
	fullURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Detail != "" {
			return fmt.Errorf("%w (status %d): %s", shared.ErrAPIRequest, resp.StatusCode, errResp.Detail)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrMalformedResponse, err)
		}
	}

	return nil
}

// Recommendations fetches the enriched recent-track list. The server default
// limit applies.
func (c *Client) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	if err := c.doRequest(ctx, "/recommendations", &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Search fetches enriched matches for an ad-hoc track query.
func (c *Client) Search(ctx context.Context, query string) ([]models.Recommendation, error) {
	endpoint := fmt.Sprintf("/search?query=%s", url.QueryEscape(query))

	var recs []models.Recommendation
	if err := c.doRequest(ctx, endpoint, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// Health checks a running service's liveness endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.doRequest(ctx, "/health", &status); err != nil {
		return nil, err
	}
	return &status, nil
}
