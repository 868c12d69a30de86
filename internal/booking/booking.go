package booking

import "time"

// RefundWindow is how long a confirmed flight booking stays refundable
const RefundWindow = 72 * time.Hour

const (
	StatusConfirmed = "confirmed"
	StatusHeld      = "held"
)

// Booking is a stored confirmation. Reference is a snowflake-derived base58
// string, safe to hand to travelers and support staff.
type Booking struct {
	Reference       string     `json:"reference"`
	UserID          string     `json:"user_id"`
	TripID          *string    `json:"trip_id,omitempty"`
	PlanID          *string    `json:"plan_id,omitempty"`
	CabinID         string     `json:"cabin_id,omitempty"`
	Status          string     `json:"status"`
	RefundableUntil *time.Time `json:"refundable_until,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewBooking builds a booking for the given confirmed cabin. Only a confirmed
// flight choice earns the refund window: a booking placed while the cabin was
// merely selected (or with no flight at all) is held without one.
func NewBooking(reference, userID, confirmedCabinID string, now time.Time) Booking {
	booking := Booking{
		Reference: reference,
		UserID:    userID,
		CabinID:   confirmedCabinID,
		Status:    StatusHeld,
		CreatedAt: now,
	}
	if confirmedCabinID != "" {
		refundable := now.Add(RefundWindow)
		booking.Status = StatusConfirmed
		booking.RefundableUntil = &refundable
	}
	return booking
}
