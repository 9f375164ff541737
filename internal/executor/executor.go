package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gonzaloriv/travelsearch/internal/models"
)

// Client is the search-execution collaborator: it dispatches a validated
// request to the inventory providers and reports per-category results.
type Client interface {
	Execute(ctx context.Context, req models.ParsedRequest) (models.SearchResults, error)
}

// HTTPClient calls the external search-execution service over JSON.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Execute(ctx context.Context, searchReq models.ParsedRequest) (models.SearchResults, error) {
	body, err := json.Marshal(searchReq)
	if err != nil {
		return models.SearchResults{}, fmt.Errorf("executor: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return models.SearchResults{}, fmt.Errorf("executor: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.SearchResults{}, fmt.Errorf("executor: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.SearchResults{}, fmt.Errorf("executor: unexpected status %d", resp.StatusCode)
	}

	var results models.SearchResults
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.SearchResults{}, fmt.Errorf("executor: decode response: %w", err)
	}
	return results, nil
}
