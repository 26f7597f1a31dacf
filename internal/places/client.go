package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const placesAPIBase = "https://places.googleapis.com/v1"

// Client wraps the Google Places API for opening-hours lookups.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Places API client.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    placesAPIBase,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type placeResponse struct {
	RegularOpeningHours json.RawMessage `json:"regularOpeningHours"`
}

// FetchHours fetches the regular opening-hours blob for a place. The
// blob is returned as raw JSON; validation happens in the hours package
// at its single parsing boundary.
func (c *Client) FetchHours(ctx context.Context, placeID string) (string, error) {
	if placeID == "" {
		return "", fmt.Errorf("empty place id")
	}

	reqURL := fmt.Sprintf("%s/places/%s?fields=regularOpeningHours&key=%s",
		c.baseURL, url.PathEscape(placeID), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var result placeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("JSON decode error: %w", err)
	}
	if len(result.RegularOpeningHours) == 0 {
		return "", fmt.Errorf("place has no opening hours")
	}

	return string(result.RegularOpeningHours), nil
}
