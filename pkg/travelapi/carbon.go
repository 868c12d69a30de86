package travelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tripsmith/pkg/logger"
)

const providerCarbon = "carbon"

// CarbonClient estimates CO2e through an external estimates API. Callers fall
// back to fixed per-passenger and per-night constants when it fails, so an
// error here never blocks a plan.
type CarbonClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *ProviderLimiter
	logger     logger.Logger
}

func NewCarbonClient(httpClient *http.Client, baseURL string, limiter *ProviderLimiter, log logger.Logger) *CarbonClient {
	return &CarbonClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    limiter,
		logger:     log,
	}
}

type estimateRequest struct {
	Type        string `json:"type"`
	Origin      string `json:"origin,omitempty"`
	Destination string `json:"destination,omitempty"`
	Passengers  int    `json:"passengers,omitempty"`
	Nights      int    `json:"nights,omitempty"`
}

type estimateResponse struct {
	EmissionsKg *float64 `json:"emissions_kg"`
}

func (c *CarbonClient) EstimateFlightEmissions(ctx context.Context, origin, destination string, passengers int) (*float64, error) {
	return c.estimate(ctx, estimateRequest{
		Type:        "flight",
		Origin:      origin,
		Destination: destination,
		Passengers:  passengers,
	})
}

func (c *CarbonClient) EstimateLodgingEmissions(ctx context.Context, nights int) (*float64, error) {
	return c.estimate(ctx, estimateRequest{
		Type:   "lodging",
		Nights: nights,
	})
}

func (c *CarbonClient) estimate(ctx context.Context, req estimateRequest) (*float64, error) {
	if err := c.limiter.Wait(ctx, providerCarbon); err != nil {
		return nil, fmt.Errorf("carbon: rate limiter wait failed: %w", err)
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("carbon: failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/estimates", c.baseURL)
	r, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("carbon: failed to build request: %w", err)
	}
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("carbon: external api call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carbon: external api returned non-200 status: %d", resp.StatusCode)
	}

	var apiResp estimateResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("carbon: failed to decode json response: %w", err)
	}
	return apiResp.EmissionsKg, nil
}
