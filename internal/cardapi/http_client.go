package cardapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"visualizer-service/internal/models"
)

// HTTPClient is an implementation of Service backed by a BI backend's card API.
type HTTPClient struct {
	BaseURL    string
	APIKey     string
	HttpClient *http.Client
}

// NewHTTPClient creates a new client for the card API at baseURL.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type cardQueryRequest struct {
	Parameters []models.Parameter `json:"parameters"`
}

// GetCard fetches a card definition by its ID.
func (c *HTTPClient) GetCard(ctx context.Context, id int) (*models.Card, error) {
	url := fmt.Sprintf("%s/api/card/%d", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create card request: %w", err)
	}

	var card models.Card
	if err := c.do(req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

// GetCardQuery runs the query of a card and returns its dataset.
func (c *HTTPClient) GetCardQuery(ctx context.Context, id int, parameters []models.Parameter) (*models.Dataset, error) {
	if parameters == nil {
		parameters = []models.Parameter{}
	}
	body, err := json.Marshal(cardQueryRequest{Parameters: parameters})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal card query request: %w", err)
	}

	url := fmt.Sprintf("%s/api/card/%d/query", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create card query request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var dataset models.Dataset
	if err := c.do(req, &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	if c.APIKey != "" {
		req.Header.Set("X-API-KEY", c.APIKey)
	}
	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call card API at %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("card API at %s: %w", req.URL, ErrCardNotFound)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("card API returned non-OK status %d at %s", resp.StatusCode, req.URL)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode card API response: %w", err)
	}
	return nil
}
