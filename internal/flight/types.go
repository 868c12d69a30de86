package flight

const (
	DefaultCurrency = "USD"
	DefaultCabin    = "economy"

	// CabinFirst never earns carbon credits, it is the reference-worst case by policy
	CabinFirst = "first"

	// groupKeyDelimiter is not expected to appear in any offer field
	groupKeyDelimiter = "|"
)

// RawFlightOffer is one priced seat on one flight leg at one cabin class,
// as delivered by the itinerary-generation response. Optional numerics are
// pointers: absence and zero are distinct states.
type RawFlightOffer struct {
	ID          string   `json:"id"`
	Carrier     string   `json:"carrier"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Departure   string   `json:"departure"`
	Arrival     string   `json:"arrival"`
	Price       float64  `json:"price"`
	Currency    string   `json:"currency,omitempty"`
	Cabin       string   `json:"cabin,omitempty"`
	EmissionsKg *float64 `json:"emissions_kg,omitempty"`
	EcoScore    *float64 `json:"eco_score,omitempty"`
}

// FlightCabinOption is one cabin variant inside a FlightGroup
type FlightCabinOption struct {
	ID           string   `json:"id"`
	Cabin        string   `json:"cabin"`
	Price        float64  `json:"price"`
	Currency     string   `json:"currency"`
	EmissionsKg  *float64 `json:"emissions_kg,omitempty"`
	EcoScore     *float64 `json:"eco_score,omitempty"`
	CarbonCredit *float64 `json:"carbon_credit,omitempty"`
}

// FlightGroup is the set of cabin variants sharing carrier, route and schedule.
// Groups are pure derivations, rebuilt wholesale from the raw offer list.
type FlightGroup struct {
	GroupID         string              `json:"group_id"`
	Carrier         string              `json:"carrier"`
	Origin          string              `json:"origin"`
	Destination     string              `json:"destination"`
	Departure       string              `json:"departure"`
	Arrival         string              `json:"arrival"`
	Cabins          []FlightCabinOption `json:"cabins"`
	LowestPrice     float64             `json:"lowest_price"`
	LowestEmissions *float64            `json:"lowest_emissions,omitempty"`
}

const (
	SortByPrice     = "price"
	SortByEmissions = "emissions"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

type SortOptions struct {
	By    string `json:"by"`    // price, emissions
	Order string `json:"order"` // asc, desc
}

type SearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date"`
	Passengers    uint32 `json:"passengers"`
}

type GroupRequest struct {
	SearchRequest
	Sort *SortOptions `json:"sort,omitempty"`
}

type Metadata struct {
	TotalOffers  uint32 `json:"total_offers"`
	TotalGroups  uint32 `json:"total_groups"`
	SearchTimeMs uint32 `json:"search_time_ms,omitempty"`
	CacheHit     bool   `json:"cache_hit"`
	CacheKey     string `json:"cache_key,omitempty"`
}

type GroupedOffersResponse struct {
	SearchCriteria SearchRequest `json:"search_criteria"`
	Metadata       Metadata      `json:"metadata"`
	Groups         []FlightGroup `json:"groups"`
}
