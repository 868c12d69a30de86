package travelapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tripsmith/internal/poi"
	"tripsmith/pkg/logger"
)

const providerPlaces = "places"

// PlacesClient resolves destination names to coordinates and lists nearby
// points of interest
type PlacesClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *ProviderLimiter
	logger     logger.Logger
}

func NewPlacesClient(httpClient *http.Client, baseURL, apiKey string, limiter *ProviderLimiter, log logger.Logger) *PlacesClient {
	return &PlacesClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		limiter:    limiter,
		logger:     log,
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type poiResponse struct {
	Places []poi.PointOfInterest `json:"places"`
}

func (c *PlacesClient) Geocode(ctx context.Context, destination string) (float64, float64, error) {
	if err := c.limiter.Wait(ctx, providerPlaces); err != nil {
		return 0, 0, fmt.Errorf("places: rate limiter wait failed: %w", err)
	}

	query := url.Values{}
	query.Set("name", destination)
	query.Set("count", "1")

	var apiResp geocodeResponse
	if err := c.get(ctx, "/v1/geocode", query, &apiResp); err != nil {
		return 0, 0, err
	}
	if len(apiResp.Results) == 0 {
		return 0, 0, fmt.Errorf("places: no geocoding result for %q", destination)
	}
	return apiResp.Results[0].Latitude, apiResp.Results[0].Longitude, nil
}

func (c *PlacesClient) FetchPOIs(ctx context.Context, latitude, longitude float64, limit int) ([]poi.PointOfInterest, error) {
	if err := c.limiter.Wait(ctx, providerPlaces); err != nil {
		return nil, fmt.Errorf("places: rate limiter wait failed: %w", err)
	}

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", latitude))
	query.Set("longitude", fmt.Sprintf("%f", longitude))
	query.Set("limit", strconv.Itoa(limit))

	var apiResp poiResponse
	if err := c.get(ctx, "/v1/places/nearby", query, &apiResp); err != nil {
		return nil, err
	}

	c.logger.Debug("points of interest fetched",
		logger.Field{Key: "count", Value: len(apiResp.Places)})
	return apiResp.Places, nil
}

func (c *PlacesClient) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("places: failed to build request: %w", err)
	}
	if c.apiKey != "" {
		r.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return fmt.Errorf("places: external api call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("places: external api returned non-200 status: %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("places: failed to decode json response: %w", err)
	}
	return nil
}
