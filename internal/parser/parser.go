package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gonzaloriv/travelsearch/internal/models"
)

// Client is the AI parsing collaborator: it turns a free-text message into a
// ParsedRequest. The core trusts the parse as best-effort extraction and
// applies no NLP of its own.
type Client interface {
	Parse(ctx context.Context, message string, prev *models.SearchContext) (models.ParsedRequest, error)
}

type parseRequest struct {
	Message string                `json:"message"`
	Context *models.SearchContext `json:"context,omitempty"`
}

// HTTPClient calls the external parsing service over JSON.
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

func (c *HTTPClient) Parse(ctx context.Context, message string, prev *models.SearchContext) (models.ParsedRequest, error) {
	body, err := json.Marshal(parseRequest{Message: message, Context: prev})
	if err != nil {
		return models.ParsedRequest{}, fmt.Errorf("parser: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", bytes.NewReader(body))
	if err != nil {
		return models.ParsedRequest{}, fmt.Errorf("parser: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.ParsedRequest{}, fmt.Errorf("parser: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ParsedRequest{}, fmt.Errorf("parser: unexpected status %d", resp.StatusCode)
	}

	var parsed models.ParsedRequest
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return models.ParsedRequest{}, fmt.Errorf("parser: decode response: %w", err)
	}
	return parsed, nil
}
