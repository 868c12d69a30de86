package trips

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tripsmith/pkg/apperr"
	"tripsmith/pkg/db"
)

type Repository struct {
	db db.SQLExecutor
}

func NewRepository(client db.SQLExecutor) *Repository {
	return &Repository{db: client}
}

func (r *Repository) Save(ctx context.Context, trip Trip) (Trip, error) {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	trip.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trips (id, user_id, destination, start_date, end_date, budget, plan_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		trip.ID, trip.UserID, trip.Destination, trip.StartDate, trip.EndDate,
		trip.Budget, trip.PlanID, trip.CreatedAt,
	)
	if err != nil {
		return Trip{}, fmt.Errorf("failed to save trip: %w", err)
	}
	return trip, nil
}

// Get returns a trip the user owns or one that was shared with them
func (r *Repository) Get(ctx context.Context, userID, tripID string) (Trip, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT t.id, t.user_id, t.destination, t.start_date, t.end_date, t.budget, t.plan_id, t.created_at
		FROM trips t
		LEFT JOIN trip_shares s ON s.trip_id = t.id AND s.shared_with_id = $1
		WHERE t.id = $2 AND (t.user_id = $1 OR s.shared_with_id IS NOT NULL)`,
		userID, tripID,
	)

	var trip Trip
	err := row.Scan(&trip.ID, &trip.UserID, &trip.Destination, &trip.StartDate,
		&trip.EndDate, &trip.Budget, &trip.PlanID, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Trip{}, apperr.NotFound("trip not found")
	}
	if err != nil {
		return Trip{}, fmt.Errorf("failed to load trip: %w", err)
	}
	return trip, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Trip, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, destination, start_date, end_date, budget, plan_id, created_at
		FROM trips
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var result []Trip
	for rows.Next() {
		var trip Trip
		if err := rows.Scan(&trip.ID, &trip.UserID, &trip.Destination, &trip.StartDate,
			&trip.EndDate, &trip.Budget, &trip.PlanID, &trip.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		result = append(result, trip)
	}
	return result, rows.Err()
}

// Delete removes a trip the user owns. Deleting someone else's trip, or a
// trip that does not exist, reports NOT_FOUND either way.
func (r *Repository) Delete(ctx context.Context, userID, tripID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM trips WHERE id = $1 AND user_id = $2`,
		tripID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperr.NotFound("trip not found")
	}
	return nil
}

// Share grants a friend read access to a trip. Ownership and an accepted
// friendship are checked inside the same transaction as the grant, so a
// concurrently revoked friendship cannot slip a share through.
func (r *Repository) Share(ctx context.Context, ownerID, tripID, friendID string) (Share, error) {
	share := Share{
		TripID:       tripID,
		OwnerID:      ownerID,
		SharedWithID: friendID,
		SharedAt:     time.Now().UTC(),
	}

	err := r.db.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sql.Tx) error {
		var owned bool
		err := tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM trips WHERE id = $1 AND user_id = $2)`,
			tripID, ownerID,
		).Scan(&owned)
		if err != nil {
			return fmt.Errorf("failed to check trip ownership: %w", err)
		}
		if !owned {
			return apperr.NotFound("trip not found")
		}

		var accepted bool
		err = tx.QueryRowContext(ctx, `
			SELECT EXISTS (
				SELECT 1 FROM friendships
				WHERE status = $3
				  AND ((user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1))
			)`,
			ownerID, friendID, FriendshipAccepted,
		).Scan(&accepted)
		if err != nil {
			return fmt.Errorf("failed to check friendship: %w", err)
		}
		if !accepted {
			return apperr.Forbidden("trips can only be shared with accepted friends")
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO trip_shares (trip_id, owner_id, shared_with_id, shared_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (trip_id, shared_with_id) DO NOTHING`,
			share.TripID, share.OwnerID, share.SharedWithID, share.SharedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to record share: %w", err)
		}
		return nil
	})
	if err != nil {
		return Share{}, err
	}
	return share, nil
}
