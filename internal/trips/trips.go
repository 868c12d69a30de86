package trips

import "time"

type Trip struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Budget      float64   `json:"budget"`
	PlanID      *string   `json:"plan_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FriendshipAccepted is the only friendship status that permits sharing
const FriendshipAccepted = "accepted"

type Share struct {
	TripID       string    `json:"trip_id"`
	OwnerID      string    `json:"owner_id"`
	SharedWithID string    `json:"shared_with_id"`
	SharedAt     time.Time `json:"shared_at"`
}
