package booking

import (
	"testing"
	"time"
)

func TestNewBooking_ConfirmedCabinGetsRefundWindow(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	b := NewBooking("BK1", "u1", "offer-1-economy", now)

	if b.Status != StatusConfirmed {
		t.Errorf("status = %q, want %q", b.Status, StatusConfirmed)
	}
	if b.RefundableUntil == nil {
		t.Fatal("confirmed booking must carry a refund deadline")
	}
	want := now.Add(72 * time.Hour)
	if !b.RefundableUntil.Equal(want) {
		t.Errorf("refundable_until = %v, want %v", b.RefundableUntil, want)
	}
}

func TestNewBooking_NoConfirmedCabin(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	b := NewBooking("BK2", "u1", "", now)

	if b.Status != StatusHeld {
		t.Errorf("status = %q, want %q", b.Status, StatusHeld)
	}
	if b.RefundableUntil != nil {
		t.Errorf("unconfirmed booking must not be refundable, got %v", b.RefundableUntil)
	}
}
