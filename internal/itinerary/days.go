package itinerary

import (
	"fmt"
	"time"

	"tripsmith/internal/poi"
)

const dateLayout = "2006-01-02"

var activitySlots = []string{"morning", "afternoon", "evening"}

// BuildDays lays out one day per date in the range, cycling through the
// deduplicated POI list and theming each day from its forecast. Works with
// empty weather or POI lists, so a plan degrades instead of failing.
func BuildDays(req TripPlanRequest, weather []WeatherForecast, pois []poi.PointOfInterest) []ItineraryDay {
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil || end.Before(start) {
		end = start
	}

	numDays := int(end.Sub(start).Hours()/24) + 1
	days := make([]ItineraryDay, 0, numDays)

	poiCursor := 0
	for offset := 0; offset < numDays; offset++ {
		date := start.AddDate(0, 0, offset).Format(dateLayout)

		day := ItineraryDay{
			Date:    date,
			Theme:   themeFor(date, weather),
			Summary: fmt.Sprintf("Day %d in %s", offset+1, req.Destination),
		}

		for _, slot := range activitySlots {
			activity := ItineraryActivity{Time: slot}
			if len(pois) > 0 {
				p := pois[poiCursor%len(pois)]
				poiCursor++
				activity.Name = p.Name
				activity.Description = p.Description
				activity.POI = &p
			} else {
				activity.Name = fmt.Sprintf("Explore %s", req.Destination)
			}
			day.Activities = append(day.Activities, activity)
		}

		days = append(days, day)
	}
	return days
}

func themeFor(date string, weather []WeatherForecast) string {
	for _, forecast := range weather {
		if forecast.Date == date {
			return forecast.Summary
		}
	}
	return ""
}
