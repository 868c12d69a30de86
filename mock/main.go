package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
)

type SearchRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"` // Format: YYYY-MM-DD
	ReturnDate    string `json:"return_date"`    // Format: YYYY-MM-DD
	Passengers    uint32 `json:"passengers"`
}

func main() {
	// Default port
	port := "8081"

	if len(os.Args) > 1 {
		port = os.Args[1]
	}

	http.HandleFunc("/v1/offers/search", OfferSearchHandler)
	http.HandleFunc("/v1/forecast", ForecastHandler)
	http.HandleFunc("/v1/geocode", GeocodeHandler)
	http.HandleFunc("/v1/places/nearby", NearbyPlacesHandler)
	http.HandleFunc("/v1/estimates", CarbonEstimateHandler)

	addr := fmt.Sprintf(":%s", port)
	fmt.Printf("Mock provider server running on port %s...\n", port)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}
