package flight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripsmith/pkg/cache"
	"tripsmith/pkg/logger"
)

type stubOfferClient struct {
	offers []RawFlightOffer
	calls  int
}

func (s *stubOfferClient) SearchOffers(_ context.Context, _ SearchRequest) ([]RawFlightOffer, error) {
	s.calls++
	return s.offers, nil
}

func newTestService(offers []RawFlightOffer) (*Service, *stubOfferClient) {
	client := &stubOfferClient{offers: offers}
	log := logger.NewZeroLog("test")
	svc := NewService(client, cache.NewMemoryCache(), 5, NewCalculator(DefaultCreditThreshold), log)
	return svc, client
}

func TestGroupedOffers_NormalizesOnceAtIngestion(t *testing.T) {
	svc, _ := newTestService([]RawFlightOffer{
		{ID: "A", Carrier: "Delta", Origin: "JFK", Destination: "NRT",
			Departure: "d", Arrival: "a", Price: 900, Cabin: "Business"},
	})

	resp, err := svc.GroupedOffers(context.Background(), GroupRequest{
		SearchRequest: SearchRequest{Origin: "JFK", Destination: "NRT", DepartureDate: "2025-06-01"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Groups, 1)
	require.Len(t, resp.Groups[0].Cabins, 1)
	assert.Equal(t, "business", resp.Groups[0].Cabins[0].Cabin)
	assert.Equal(t, "USD", resp.Groups[0].Cabins[0].Currency)
	assert.Equal(t, "A-business", resp.Groups[0].Cabins[0].ID)
}

func TestGroupedOffers_CacheAside(t *testing.T) {
	svc, client := newTestService(deltaOffers())
	req := GroupRequest{
		SearchRequest: SearchRequest{Origin: "JFK", Destination: "NRT", DepartureDate: "2025-06-01"},
	}

	first, err := svc.GroupedOffers(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Metadata.CacheHit)
	assert.Equal(t, 1, client.calls)

	second, err := svc.GroupedOffers(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Metadata.CacheHit)
	assert.Equal(t, 1, client.calls, "cache hit must not refetch")
	assert.Equal(t, first.Groups, second.Groups)
}

func TestGroupedOffers_AttachesCarbonCredits(t *testing.T) {
	svc, _ := newTestService([]RawFlightOffer{
		{ID: "1", Carrier: "ANA", Origin: "JFK", Destination: "HND",
			Departure: "d", Arrival: "a", Price: 850, Cabin: "economy", EmissionsKg: fptr(150)},
		{ID: "2", Carrier: "ANA", Origin: "JFK", Destination: "HND",
			Departure: "d", Arrival: "a", Price: 4200, Cabin: "first", EmissionsKg: fptr(900)},
	})

	resp, err := svc.GroupedOffers(context.Background(), GroupRequest{
		SearchRequest: SearchRequest{Origin: "JFK", Destination: "HND", DepartureDate: "2025-06-01"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Groups, 1)
	cabins := resp.Groups[0].Cabins
	require.Len(t, cabins, 2)

	require.NotNil(t, cabins[0].CarbonCredit)
	assert.Equal(t, 750.0, *cabins[0].CarbonCredit)
	assert.Nil(t, cabins[1].CarbonCredit, "first class shows no credits")
}

func TestGroupedOffers_DefaultSortIsPriceAscending(t *testing.T) {
	svc, _ := newTestService([]RawFlightOffer{
		{ID: "1", Carrier: "A", Origin: "X", Destination: "Y",
			Departure: "d1", Arrival: "a1", Price: 900, Cabin: "economy"},
		{ID: "2", Carrier: "B", Origin: "X", Destination: "Y",
			Departure: "d2", Arrival: "a2", Price: 400, Cabin: "economy"},
	})

	resp, err := svc.GroupedOffers(context.Background(), GroupRequest{
		SearchRequest: SearchRequest{Origin: "X", Destination: "Y", DepartureDate: "2025-06-01"},
		Sort:          &SortOptions{By: "bogus"},
	})
	require.NoError(t, err)

	require.Len(t, resp.Groups, 2)
	assert.Equal(t, 400.0, resp.Groups[0].LowestPrice)
	assert.Equal(t, 900.0, resp.Groups[1].LowestPrice)
}
