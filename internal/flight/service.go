package flight

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"tripsmith/pkg/cache"
	"tripsmith/pkg/logger"
)

// OfferClient fetches raw flight offers from the flight provider
type OfferClient interface {
	SearchOffers(ctx context.Context, req SearchRequest) ([]RawFlightOffer, error)
}

type Service struct {
	offers OfferClient
	cache  cache.Cache
	ttl    time.Duration
	calc   Calculator
	logger logger.Logger
}

func NewService(offers OfferClient, cache cache.Cache, ttlMinutes int, calc Calculator, logger logger.Logger) *Service {
	return &Service{
		offers: offers,
		cache:  cache,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
		calc:   calc,
		logger: logger,
	}
}

// generateCacheKey creates a deterministic key from search parameters
func (s *Service) generateCacheKey(req SearchRequest) string {
	key := fmt.Sprintf("offers:%s:%s:%s:%s:%d",
		req.Origin,
		req.Destination,
		req.DepartureDate,
		req.ReturnDate,
		req.Passengers,
	)

	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("flight:offers:%x", hash[:16])
}

// GroupedOffers fetches offers (cache-aside), groups them, attaches carbon
// credits and applies the requested display sort.
func (s *Service) GroupedOffers(ctx context.Context, req GroupRequest) (*GroupedOffersResponse, error) {
	cacheKey := s.generateCacheKey(req.SearchRequest)
	startTime := time.Now()

	offers, cacheHit := s.cachedOffers(ctx, cacheKey)
	if !cacheHit {
		fetched, err := s.offers.SearchOffers(ctx, req.SearchRequest)
		if err != nil {
			return nil, err
		}

		// normalization happens exactly once, at ingestion
		offers = NormalizeOffers(fetched)

		if payload, err := json.Marshal(offers); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(payload), s.ttl); err != nil {
				s.logger.Error("failed to cache offers",
					logger.Field{Key: "err", Value: err},
					logger.Field{Key: "cache_key", Value: cacheKey},
				)
			}
		}
	}

	groups := Group(offers)
	for gi := range groups {
		for ci := range groups[gi].Cabins {
			groups[gi].Cabins[ci].CarbonCredit = s.calc.CarbonCredit(groups[gi], groups[gi].Cabins[ci])
		}
	}

	sortOpts := SortOptions{By: SortByPrice, Order: OrderAsc}
	if req.Sort != nil {
		sortOpts = *req.Sort
		if sortOpts.By != SortByPrice && sortOpts.By != SortByEmissions {
			s.logger.Warn("invalid sort criteria, falling back to ascending price",
				logger.Field{Key: "sort_by", Value: sortOpts.By})
		}
	}
	sorted := SortGroups(groups, sortOpts)

	return &GroupedOffersResponse{
		SearchCriteria: req.SearchRequest,
		Metadata: Metadata{
			TotalOffers:  uint32(len(offers)),
			TotalGroups:  uint32(len(sorted)),
			SearchTimeMs: uint32(time.Since(startTime).Milliseconds()),
			CacheHit:     cacheHit,
			CacheKey:     cacheKey,
		},
		Groups: sorted,
	}, nil
}

func (s *Service) cachedOffers(ctx context.Context, cacheKey string) ([]RawFlightOffer, bool) {
	cached, err := s.cache.Get(ctx, cacheKey)
	if err != nil || cached == "" {
		return nil, false
	}

	var offers []RawFlightOffer
	if err := json.Unmarshal([]byte(cached), &offers); err != nil {
		s.logger.Error("failed to unmarshal cached offers",
			logger.Field{Key: "err", Value: err},
			logger.Field{Key: "cache_key", Value: cacheKey},
		)
		return nil, false
	}
	return offers, true
}

// InvalidateOffers drops the cached offer list for a search
func (s *Service) InvalidateOffers(ctx context.Context, req SearchRequest) error {
	cacheKey := s.generateCacheKey(req)
	s.logger.Info("invalidating offer cache", logger.Field{Key: "cache_key", Value: cacheKey})
	return s.cache.Del(ctx, cacheKey)
}
