package travelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tripsmith/internal/flight"
	"tripsmith/pkg/logger"
)

const providerFlights = "flights"

// FlightAPIClient talks to the flight offer aggregator. Offers come back in
// the raw wire shape; normalization and grouping happen in internal/flight.
type FlightAPIClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *ProviderLimiter
	logger     logger.Logger
}

func NewFlightAPIClient(httpClient *http.Client, baseURL string, limiter *ProviderLimiter, log logger.Logger) *FlightAPIClient {
	return &FlightAPIClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    limiter,
		logger:     log,
	}
}

type offerSearchResponse struct {
	Status string                  `json:"status"`
	Offers []flight.RawFlightOffer `json:"offers"`
}

func (c *FlightAPIClient) SearchOffers(ctx context.Context, req flight.SearchRequest) ([]flight.RawFlightOffer, error) {
	if err := c.limiter.Wait(ctx, providerFlights); err != nil {
		return nil, fmt.Errorf("flightapi: rate limiter wait failed: %w", err)
	}

	url := fmt.Sprintf("%s/v1/offers/search", c.baseURL)

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("flightapi: failed to marshal request: %w", err)
	}

	r, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("flightapi: failed to build request: %w", err)
	}
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("flightapi: external api call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flightapi: external api returned non-200 status: %d", resp.StatusCode)
	}

	var apiResp offerSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("flightapi: failed to decode json response: %w", err)
	}

	c.logger.Debug("flight offers fetched",
		logger.Field{Key: "origin", Value: req.Origin},
		logger.Field{Key: "destination", Value: req.Destination},
		logger.Field{Key: "count", Value: len(apiResp.Offers)},
	)
	return apiResp.Offers, nil
}
