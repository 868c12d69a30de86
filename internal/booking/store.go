package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tripsmith/pkg/apperr"
	"tripsmith/pkg/db"
)

type Store struct {
	db db.SQLExecutor
}

func NewStore(client db.SQLExecutor) *Store {
	return &Store{db: client}
}

func (s *Store) Save(ctx context.Context, b Booking) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings
			(reference, user_id, trip_id, plan_id, cabin_id, status, refundable_until, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		b.Reference, b.UserID, b.TripID, b.PlanID, b.CabinID,
		b.Status, b.RefundableUntil, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, userID, reference string) (Booking, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT reference, user_id, trip_id, plan_id, cabin_id, status, refundable_until, created_at
		FROM bookings
		WHERE reference = $1 AND user_id = $2`,
		reference, userID,
	)

	var b Booking
	err := row.Scan(&b.Reference, &b.UserID, &b.TripID, &b.PlanID,
		&b.CabinID, &b.Status, &b.RefundableUntil, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Booking{}, apperr.NotFound("booking not found")
	}
	if err != nil {
		return Booking{}, fmt.Errorf("failed to load booking: %w", err)
	}
	return b, nil
}
