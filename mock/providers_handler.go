package main

import (
	"encoding/json"
	"net/http"
	"time"
)

func ForecastHandler(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("start_date"))
	if err != nil {
		start = time.Now().UTC()
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("end_date"))
	if err != nil || end.Before(start) {
		end = start.AddDate(0, 0, 2)
	}

	days := int(end.Sub(start).Hours()/24) + 1
	dates := make([]string, 0, days)
	highs := make([]float64, 0, days)
	lows := make([]float64, 0, days)
	precip := make([]float64, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format("2006-01-02"))
		highs = append(highs, 24+float64(i%5))
		lows = append(lows, 15+float64(i%3))
		precip = append(precip, float64((i*25)%90))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"daily": map[string]any{
			"time":                          dates,
			"temperature_2m_max":            highs,
			"temperature_2m_min":            lows,
			"precipitation_probability_max": precip,
		},
	})
}

func GeocodeHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"results": []map[string]any{
			{"name": name, "latitude": 38.7223, "longitude": -9.1393},
		},
	})
}

func NearbyPlacesHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"places": []map[string]any{
			{"name": "Castle Quarter", "category": "historic", "description": "Hilltop fortifications with city views."},
			{"name": "Market Hall", "category": "food", "description": "Stalls from regional producers."},
			{"name": "Botanical Garden", "category": "outdoor", "description": "Shaded walks and seasonal blooms."},
			{"name": "Maritime Museum", "category": "museum", "description": "Navigation history and ship models."},
			{"name": "Castle Quarter", "category": "viewpoint", "description": "Duplicate listing under another category."},
		},
	})
}

func CarbonEstimateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Type       string `json:"type"`
		Passengers int    `json:"passengers"`
		Nights     int    `json:"nights"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	var emissions float64
	switch req.Type {
	case "flight":
		if req.Passengers < 1 {
			req.Passengers = 1
		}
		emissions = 185.5 * float64(req.Passengers)
	case "lodging":
		if req.Nights < 1 {
			req.Nights = 1
		}
		emissions = 12.8 * float64(req.Nights)
	default:
		http.Error(w, "unknown estimate type", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"emissions_kg": emissions})
}
