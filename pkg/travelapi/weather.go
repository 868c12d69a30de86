package travelapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"tripsmith/internal/itinerary"
	"tripsmith/pkg/logger"
)

const providerWeather = "weather"

// WeatherClient queries an Open-Meteo-compatible daily forecast endpoint
type WeatherClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *ProviderLimiter
	logger     logger.Logger
}

func NewWeatherClient(httpClient *http.Client, baseURL string, limiter *ProviderLimiter, log logger.Logger) *WeatherClient {
	return &WeatherClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		limiter:    limiter,
		logger:     log,
	}
}

type weatherDaily struct {
	Time                        []string  `json:"time"`
	TemperatureMax              []float64 `json:"temperature_2m_max"`
	TemperatureMin              []float64 `json:"temperature_2m_min"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
}

type weatherResponse struct {
	Daily weatherDaily `json:"daily"`
}

func (c *WeatherClient) FetchForecast(ctx context.Context, latitude, longitude float64, startDate, endDate string) ([]itinerary.WeatherForecast, error) {
	if err := c.limiter.Wait(ctx, providerWeather); err != nil {
		return nil, fmt.Errorf("weather: rate limiter wait failed: %w", err)
	}

	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%f", latitude))
	query.Set("longitude", fmt.Sprintf("%f", longitude))
	query.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	query.Set("timezone", "auto")
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)

	endpoint := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, query.Encode())

	r, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("weather: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, fmt.Errorf("weather: external api call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: external api returned non-200 status: %d", resp.StatusCode)
	}

	var apiResp weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("weather: failed to decode json response: %w", err)
	}

	return mapForecast(apiResp.Daily), nil
}

func mapForecast(daily weatherDaily) []itinerary.WeatherForecast {
	forecast := make([]itinerary.WeatherForecast, 0, len(daily.Time))
	for i, date := range daily.Time {
		high := valueAt(daily.TemperatureMax, i)
		low := valueAt(daily.TemperatureMin, i)
		precip := valueAt(daily.PrecipitationProbabilityMax, i)

		forecast = append(forecast, itinerary.WeatherForecast{
			Date:                     date,
			Summary:                  SummarizeWeather(precip, high),
			TemperatureHighC:         high,
			TemperatureLowC:          low,
			PrecipitationProbability: precip / 100,
		})
	}
	return forecast
}

// SummarizeWeather buckets a day's forecast into a display phrase.
// precipProbability is a percentage, not a fraction.
func SummarizeWeather(precipProbability, high float64) string {
	switch {
	case precipProbability > 70:
		return "Likely rain showers"
	case precipProbability > 30:
		return "Chance of light rain"
	case high >= 30:
		return "Hot and sunny"
	case high <= 5:
		return "Cold conditions"
	default:
		return "Pleasant weather"
	}
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
