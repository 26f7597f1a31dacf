package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"felt/internal/model"
)

const geolocateURL = "http://ip-api.com/json/?fields=status,message,lat,lon"

// Locator resolves the user's approximate location once, on demand. The
// terminal has no geolocation capability, so this falls back to IP-based
// lookup; a failure here is the moral equivalent of a denied browser
// permission prompt and is surfaced as a notice, never an error screen.
type Locator struct {
	baseURL    string
	httpClient *http.Client
}

// NewLocator creates an IP-geolocation locator.
func NewLocator() *Locator {
	return &Locator{
		baseURL:    geolocateURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type geoResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate performs the one-shot lookup.
func (l *Locator) Locate(ctx context.Context) (model.Coord, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", l.baseURL, nil)
	if err != nil {
		return model.Coord{}, fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return model.Coord{}, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Coord{}, fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	var result geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Coord{}, fmt.Errorf("JSON decode error: %w", err)
	}
	if result.Status != "success" {
		return model.Coord{}, fmt.Errorf("lookup failed: %s", result.Message)
	}

	return model.Coord{Lat: result.Lat, Lng: result.Lon}, nil
}
