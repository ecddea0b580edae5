package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reperio/internal/common"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Client is a thin wrapper around the Google Places and Geocoding web
// APIs. All calls share one rate limiter so bursts of enrichment
// lookups stay under quota.
type Client struct {
	config     *common.PlacesAPIConfig
	logger     arbor.ILogger
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewClient creates a Places API client
func NewClient(config *common.PlacesAPIConfig, logger arbor.ILogger) *Client {
	interval := config.RateLimit
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &Client{
		config: config,
		logger: logger,
		apiKey: config.APIKey,
		httpClient: &http.Client{
			Timeout: config.RequestTimeout,
		},
		limiter: rate.NewLimiter(limit, 1),
		baseURL: defaultBaseURL,
	}
}

// Configured reports whether an API key is available
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// NearbySearch searches for places of the given type around a location.
// The location may be a free-form string or "lat,lng" coordinates.
func (c *Client) NearbySearch(ctx context.Context, location string, radius int, placeType string) ([]PlaceResult, error) {
	params := url.Values{}
	params.Set("location", location)
	params.Set("radius", fmt.Sprintf("%d", radius))
	if placeType != "" {
		params.Set("type", placeType)
	}
	params.Set("language", "en")

	var apiResp PlacesNearbySearchResponse
	if err := c.get(ctx, "/maps/api/place/nearbysearch/json", params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("API error: %s - %s", apiResp.Status, apiResp.ErrorMessage)
	}

	c.logger.Info().
		Str("location", location).
		Int("radius", radius).
		Int("results_count", len(apiResp.Results)).
		Str("status", apiResp.Status).
		Msg("Google Places Nearby Search completed")

	return apiResp.Results, nil
}

// TextSearch performs a free-text place search
func (c *Client) TextSearch(ctx context.Context, query string) ([]PlaceResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("language", "en")

	var apiResp PlacesTextSearchResponse
	if err := c.get(ctx, "/maps/api/place/textsearch/json", params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("API error: %s - %s", apiResp.Status, apiResp.ErrorMessage)
	}

	c.logger.Info().
		Str("query", query).
		Int("results_count", len(apiResp.Results)).
		Str("status", apiResp.Status).
		Msg("Google Places Text Search completed")

	return apiResp.Results, nil
}

// Geocode resolves a location string to coordinates. A nil result with
// a nil error means the location could not be geocoded.
func (c *Client) Geocode(ctx context.Context, location string) (*LatLng, error) {
	params := url.Values{}
	params.Set("address", location)

	var apiResp GeocodeResponse
	if err := c.get(ctx, "/maps/api/geocode/json", params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != "OK" && apiResp.Status != "ZERO_RESULTS" {
		return nil, fmt.Errorf("API error: %s - %s", apiResp.Status, apiResp.ErrorMessage)
	}

	if len(apiResp.Results) == 0 || apiResp.Results[0].Geometry == nil || apiResp.Results[0].Geometry.Location == nil {
		c.logger.Debug().Str("location", location).Msg("Location could not be geocoded")
		return nil, nil
	}

	latLng := apiResp.Results[0].Geometry.Location
	c.logger.Debug().
		Str("location", location).
		Float64("lat", latLng.Lat).
		Float64("lng", latLng.Lng).
		Msg("Location geocoded")

	return latLng, nil
}

// Details fetches the contact and opening-hours fields for a place
func (c *Client) Details(ctx context.Context, placeID string) (*DetailsResult, error) {
	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "formatted_phone_number,website,opening_hours,formatted_address,url")

	var apiResp PlaceDetailsResponse
	if err := c.get(ctx, "/maps/api/place/details/json", params, &apiResp); err != nil {
		return nil, err
	}

	if apiResp.Status != "OK" {
		return nil, fmt.Errorf("API error: %s - %s", apiResp.Status, apiResp.ErrorMessage)
	}

	return apiResp.Result, nil
}

// get performs a rate-limited GET and decodes the JSON response.
// The API key is appended here and redacted from all logging.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("Google Places API key is not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter interrupted: %w", err)
	}

	logURL := fmt.Sprintf("%s%s?%s&key=***REDACTED***", c.baseURL, path, params.Encode())
	c.logger.Debug().Str("url", logURL).Msg("Calling Google Maps API")

	params.Set("key", c.apiKey)
	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call Google Maps API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("Google Maps API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode API response: %w", err)
	}

	return nil
}
