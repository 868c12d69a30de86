package itinerary

import "time"

// Emission fallbacks when no provider estimate is available
const (
	FallbackFlightEmissionsKg          = 200.0
	FallbackLodgingEmissionsKgPerNight = 15.0
)

const fallbackWeatherSummary = "Data unavailable, assume mild weather"

// FallbackWeather synthesizes a mild forecast when the weather provider is
// unreachable or the destination could not be geocoded. Always covers at
// least three days so the itinerary builder has themes to work with.
func FallbackWeather(startDate, endDate string) []WeatherForecast {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil || end.Before(start) {
		end = start
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days < 3 {
		days = 3
	}

	forecast := make([]WeatherForecast, 0, days)
	for i := 0; i < days; i++ {
		forecast = append(forecast, WeatherForecast{
			Date:                     start.AddDate(0, 0, i).Format(dateLayout),
			Summary:                  fallbackWeatherSummary,
			TemperatureHighC:         22,
			TemperatureLowC:          14,
			PrecipitationProbability: 0.2,
		})
	}
	return forecast
}
