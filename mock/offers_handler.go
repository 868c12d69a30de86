package main

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
)

type RawOffer struct {
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

func OfferSearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SearchRequest
	json.NewDecoder(r.Body).Decode(&req)

	data, err := os.ReadFile("mock/files/offer_search_response.json")
	if err != nil {
		http.Error(w, "Failed to read offer data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var fileResponse struct {
		Status string     `json:"status"`
		Offers []RawOffer `json:"offers"`
	}
	if err := json.Unmarshal(data, &fileResponse); err != nil {
		http.Error(w, "Failed to parse offer data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filtered := make([]RawOffer, 0)
	for _, offer := range fileResponse.Offers {
		if req.Origin != "" && !strings.EqualFold(offer.Origin, req.Origin) {
			continue
		}
		if req.Destination != "" && !strings.EqualFold(offer.Destination, req.Destination) {
			continue
		}
		filtered = append(filtered, offer)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status": "ok",
		"offers": filtered,
	})
}
