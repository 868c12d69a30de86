package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"tripsmith/internal/flight"
	"tripsmith/internal/poi"
	"tripsmith/pkg/apperr"
	"tripsmith/pkg/cache"
	"tripsmith/pkg/logger"
)

// planCacheTTL keeps generated plans retrievable (PDF export, reloads)
// without treating the cache as a durable store
const planCacheTTL = 24 * time.Hour

// WeatherClient fetches a daily forecast for a coordinate range
type WeatherClient interface {
	FetchForecast(ctx context.Context, latitude, longitude float64, startDate, endDate string) ([]WeatherForecast, error)
}

// PlacesClient resolves destinations and finds nearby points of interest
type PlacesClient interface {
	Geocode(ctx context.Context, destination string) (latitude, longitude float64, err error)
	FetchPOIs(ctx context.Context, latitude, longitude float64, limit int) ([]poi.PointOfInterest, error)
}

// CarbonClient estimates CO2e when the offer feed does not carry it
type CarbonClient interface {
	EstimateFlightEmissions(ctx context.Context, origin, destination string, passengers int) (*float64, error)
	EstimateLodgingEmissions(ctx context.Context, nights int) (*float64, error)
}

type Service struct {
	offers  flight.OfferClient
	weather WeatherClient
	places  PlacesClient
	carbon  CarbonClient
	cache   cache.Cache
	calc    flight.Calculator
	timeout time.Duration
	logger  logger.Logger
}

func NewService(
	offers flight.OfferClient,
	weather WeatherClient,
	places PlacesClient,
	carbon CarbonClient,
	c cache.Cache,
	calc flight.Calculator,
	timeoutSeconds int,
	log logger.Logger,
) *Service {
	return &Service{
		offers:  offers,
		weather: weather,
		places:  places,
		carbon:  carbon,
		cache:   c,
		calc:    calc,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		logger:  log,
	}
}

// BuildPlan assembles a full trip plan: weather, grouped flight offers,
// lodging, POIs, day-by-day itinerary, budget split and sustainability score.
//
// Provider calls run under a client-side deadline; when it expires the plan
// request fails with TIMEOUT and any in-flight provider call is abandoned,
// not cancelled server-side. Individual provider failures degrade to
// fallback data instead of failing the plan.
func (s *Service) BuildPlan(ctx context.Context, req TripPlanRequest) (*TripPlanResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if req.Travelers < 1 {
		req.Travelers = 1
	}

	latitude, longitude, err := s.places.Geocode(ctx, req.Destination)
	geocoded := err == nil
	if !geocoded {
		s.logger.Warn("failed to geocode destination, using fallbacks",
			logger.Field{Key: "destination", Value: req.Destination},
			logger.Field{Key: "err", Value: err},
		)
	}

	var (
		wg       sync.WaitGroup
		forecast []WeatherForecast
		offers   []flight.RawFlightOffer
		pois     []poi.PointOfInterest
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		forecast = s.fetchWeather(ctx, req, latitude, longitude, geocoded)
	}()
	go func() {
		defer wg.Done()
		offers = s.fetchOffers(ctx, req)
	}()
	go func() {
		defer wg.Done()
		pois = s.fetchPOIs(ctx, req, latitude, longitude, geocoded)
	}()
	wg.Wait()

	if err := ctx.Err(); errors.Is(err, context.DeadlineExceeded) {
		return nil, apperr.Timeout("itinerary generation timed out")
	}

	nights := tripNights(req)
	lodging := CuratedLodging(req, nights)
	s.backfillEmissions(ctx, req, offers, lodging, nights)

	groups := flight.Group(flight.NormalizeOffers(offers))
	for gi := range groups {
		for ci := range groups[gi].Cabins {
			groups[gi].Cabins[ci].CarbonCredit = s.calc.CarbonCredit(groups[gi], groups[gi].Cabins[ci])
		}
	}
	groups = flight.SortGroups(groups, flight.SortOptions{By: flight.SortByPrice, Order: flight.OrderAsc})

	flightCost := 0.0
	if len(groups) > 0 {
		flightCost = groups[0].LowestPrice
	}
	lodgingCost := 0.0
	if len(lodging) > 0 {
		lodgingCost = lodging[0].NightlyRate * float64(nights)
	}

	response := &TripPlanResponse{
		ID:               uuid.NewString(),
		Destination:      req.Destination,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Travelers:        req.Travelers,
		Budget:           req.Budget,
		Currency:         flight.DefaultCurrency,
		Weather:          forecast,
		FlightGroups:     groups,
		Lodging:          lodging,
		PointsOfInterest: poi.Categorize(pois),
		Itinerary:        BuildDays(req, forecast, poi.Dedupe(pois)),
		BudgetBreakdown:  BuildBudgetBreakdown(req.Budget, flightCost, lodgingCost, flight.DefaultCurrency),
		Sustainability:   CalculateSustainability(req, lodging),
	}

	s.storePlan(ctx, response)
	return response, nil
}

// GetPlan loads a previously generated plan by id
func (s *Service) GetPlan(ctx context.Context, planID string) (*TripPlanResponse, error) {
	cached, err := s.cache.Get(ctx, planKey(planID))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, apperr.NotFound("plan not found")
		}
		return nil, err
	}

	var plan TripPlanResponse
	if err := json.Unmarshal([]byte(cached), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached plan: %w", err)
	}
	return &plan, nil
}

func (s *Service) fetchWeather(ctx context.Context, req TripPlanRequest, lat, lon float64, geocoded bool) []WeatherForecast {
	if geocoded {
		forecast, err := s.weather.FetchForecast(ctx, lat, lon, req.StartDate, req.EndDate)
		if err == nil && len(forecast) > 0 {
			return forecast
		}
		if err != nil {
			s.logger.Warn("weather provider failed, using fallback forecast",
				logger.Field{Key: "err", Value: err})
		}
	}
	return FallbackWeather(req.StartDate, req.EndDate)
}

func (s *Service) fetchOffers(ctx context.Context, req TripPlanRequest) []flight.RawFlightOffer {
	offers, err := s.offers.SearchOffers(ctx, flight.SearchRequest{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.StartDate,
		ReturnDate:    req.EndDate,
		Passengers:    uint32(req.Travelers),
	})
	if err != nil {
		s.logger.Warn("flight provider failed, plan continues without offers",
			logger.Field{Key: "err", Value: err})
		return nil
	}
	return offers
}

func (s *Service) fetchPOIs(ctx context.Context, req TripPlanRequest, lat, lon float64, geocoded bool) []poi.PointOfInterest {
	if geocoded {
		pois, err := s.places.FetchPOIs(ctx, lat, lon, 6)
		if err == nil && len(pois) > 0 {
			return pois
		}
		if err != nil {
			s.logger.Warn("places provider failed, using curated POIs",
				logger.Field{Key: "err", Value: err})
		}
	}
	return poi.Fallback(req.Destination)
}

// backfillEmissions fills missing emission estimates so the carbon credit
// computation has data to work with. Estimates are per plan, not per offer:
// one route estimate covers every offer that lacks its own figure.
func (s *Service) backfillEmissions(ctx context.Context, req TripPlanRequest, offers []flight.RawFlightOffer, lodging []LodgingOption, nights int) {
	var flightEstimate *float64
	for i := range offers {
		if offers[i].EmissionsKg != nil {
			continue
		}
		if flightEstimate == nil {
			estimate, err := s.carbon.EstimateFlightEmissions(ctx, req.Origin, req.Destination, req.Travelers)
			if err != nil || estimate == nil {
				fallback := FallbackFlightEmissionsKg * float64(req.Travelers)
				estimate = &fallback
			}
			flightEstimate = estimate
		}
		value := *flightEstimate
		offers[i].EmissionsKg = &value
	}

	for i := range lodging {
		if lodging[i].EmissionsKg != nil {
			continue
		}
		estimate, err := s.carbon.EstimateLodgingEmissions(ctx, nights)
		if err != nil || estimate == nil {
			fallback := FallbackLodgingEmissionsKgPerNight * float64(nights)
			estimate = &fallback
		}
		perNight := *estimate / float64(nights)
		lodging[i].EmissionsKg = &perNight
	}
}

func (s *Service) storePlan(ctx context.Context, plan *TripPlanResponse) {
	payload, err := json.Marshal(plan)
	if err != nil {
		s.logger.Error("failed to marshal plan for caching",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "plan_id", Value: plan.ID},
		)
		return
	}
	if err := s.cache.Set(ctx, planKey(plan.ID), string(payload), planCacheTTL); err != nil {
		s.logger.Error("failed to cache plan",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "plan_id", Value: plan.ID},
		)
	}
}

func planKey(planID string) string {
	return "itinerary:plan:" + planID
}

func tripNights(req TripPlanRequest) int {
	start, errStart := time.Parse(dateLayout, req.StartDate)
	end, errEnd := time.Parse(dateLayout, req.EndDate)
	if errStart != nil || errEnd != nil {
		return 1
	}
	nights := int(end.Sub(start).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}
