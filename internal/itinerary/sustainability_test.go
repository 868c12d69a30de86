package itinerary

import "testing"

func scorePtr(v float64) *float64 { return &v }

func TestCalculateSustainability_AllCriteria(t *testing.T) {
	req := TripPlanRequest{
		Budget:    1200,
		Travelers: 3,
		Profile: &TravelerProfile{
			Preferences: TravelerPreferences{SustainabilityPriority: true},
		},
	}
	lodging := []LodgingOption{
		{Name: "EcoStay", SustainabilityScore: scorePtr(0.85)},
	}

	score := CalculateSustainability(req, lodging)

	if score.TotalPoints != 50 {
		t.Fatalf("points = %d, want 50", score.TotalPoints)
	}
	if score.Tier != TierForest {
		t.Errorf("tier = %q, want %q", score.Tier, TierForest)
	}
	if len(score.Breakdown) != 4 {
		t.Errorf("breakdown entries = %d, want 4", len(score.Breakdown))
	}
}

func TestCalculateSustainability_Tiers(t *testing.T) {
	cases := []struct {
		name string
		req  TripPlanRequest
		want string
	}{
		{
			name: "no criteria met",
			req:  TripPlanRequest{Budget: 5000, Travelers: 1},
			want: TierSeedling,
		},
		{
			name: "priority alone stays seedling",
			req: TripPlanRequest{
				Budget:    5000,
				Travelers: 1,
				Profile:   &TravelerProfile{Preferences: TravelerPreferences{SustainabilityPriority: true}},
			},
			want: TierSeedling,
		},
		{
			name: "priority plus group reaches sapling",
			req: TripPlanRequest{
				Budget:    5000,
				Travelers: 2,
				Profile:   &TravelerProfile{Preferences: TravelerPreferences{SustainabilityPriority: true}},
			},
			want: TierSapling,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := CalculateSustainability(tc.req, nil)
			if score.Tier != tc.want {
				t.Errorf("tier = %q, want %q", score.Tier, tc.want)
			}
		})
	}
}

func TestCalculateSustainability_OnlyFirstEcoLodgingScores(t *testing.T) {
	req := TripPlanRequest{Budget: 5000, Travelers: 1}
	lodging := []LodgingOption{
		{Name: "EcoStay A", SustainabilityScore: scorePtr(0.9)},
		{Name: "EcoStay B", SustainabilityScore: scorePtr(0.95)},
	}

	score := CalculateSustainability(req, lodging)
	if score.TotalPoints != 15 {
		t.Errorf("points = %d, want 15 (second eco option must not stack)", score.TotalPoints)
	}
}

func TestCalculateSustainability_ScoreAtThresholdDoesNotCount(t *testing.T) {
	req := TripPlanRequest{Budget: 5000, Travelers: 1}
	lodging := []LodgingOption{
		{Name: "Borderline", SustainabilityScore: scorePtr(0.8)},
	}

	score := CalculateSustainability(req, lodging)
	if score.TotalPoints != 0 {
		t.Errorf("points = %d, want 0 for score exactly 0.8", score.TotalPoints)
	}
}
