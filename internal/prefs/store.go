package prefs

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"tripsmith/pkg/db"
)

type Store struct {
	db db.SQLExecutor
}

func NewStore(client db.SQLExecutor) *Store {
	return &Store{db: client}
}

// Save upserts extracted preferences. A duplicate (same user, type, category
// and value) bumps its frequency instead of inserting a second row, which is
// what promotion later counts.
func (s *Store) Save(ctx context.Context, preferences []Preference) error {
	for _, pref := range preferences {
		if pref.Frequency < 1 {
			pref.Frequency = 1
		}
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO chat_preferences
				(user_id, trip_id, preference_type, preference_category,
				 preference_value, frequency, confidence, extracted_from_message)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, preference_type, preference_category, preference_value)
			DO UPDATE SET
				frequency  = chat_preferences.frequency + 1,
				updated_at = now()`,
			pref.UserID, pref.TripID, pref.Type, pref.Category,
			pref.Value, pref.Frequency, pref.Confidence, pref.ExtractedFrom,
		)
		if err != nil {
			return fmt.Errorf("failed to save preference %q: %w", pref.Value, err)
		}
	}
	return nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]Preference, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, trip_id, preference_type, preference_category,
		       preference_value, frequency, confidence, extracted_from_message
		FROM chat_preferences
		WHERE user_id = $1
		ORDER BY frequency DESC, id ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer rows.Close()

	var preferences []Preference
	for rows.Next() {
		var pref Preference
		if err := rows.Scan(
			&pref.ID, &pref.UserID, &pref.TripID, &pref.Type, &pref.Category,
			&pref.Value, &pref.Frequency, &pref.Confidence, &pref.ExtractedFrom,
		); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		preferences = append(preferences, pref)
	}
	return preferences, rows.Err()
}

// PromoteFrequent copies trip-specific preferences seen at least
// PromotionFrequency times to long_term, once each, and merges promoted
// dietary values into the user's dietary restrictions. Runs in one
// transaction so a partial promotion never leaks.
func (s *Store) PromoteFrequent(ctx context.Context, userID string) ([]Preference, error) {
	var promoted []Preference

	err := s.db.WithTransaction(ctx, sql.LevelReadCommitted, func(ctx context.Context, tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT preference_category, preference_value, frequency, confidence
			FROM chat_preferences
			WHERE user_id = $1 AND preference_type = $2 AND frequency >= $3`,
			userID, TypeTripSpecific, PromotionFrequency,
		)
		if err != nil {
			return fmt.Errorf("failed to find frequent preferences: %w", err)
		}

		var candidates []Preference
		for rows.Next() {
			var pref Preference
			if err := rows.Scan(&pref.Category, &pref.Value, &pref.Frequency, &pref.Confidence); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan candidate: %w", err)
			}
			pref.UserID = userID
			pref.Type = TypeLongTerm
			pref.ExtractedFrom = fmt.Sprintf("Promoted from trip-specific (frequency: %d)", pref.Frequency)
			candidates = append(candidates, pref)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		var dietary []string
		for _, pref := range candidates {
			result, err := tx.ExecContext(ctx, `
				INSERT INTO chat_preferences
					(user_id, trip_id, preference_type, preference_category,
					 preference_value, frequency, confidence, extracted_from_message)
				VALUES ($1, NULL, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (user_id, preference_type, preference_category, preference_value)
				DO NOTHING`,
				pref.UserID, pref.Type, pref.Category, pref.Value,
				pref.Frequency, pref.Confidence, pref.ExtractedFrom,
			)
			if err != nil {
				return fmt.Errorf("failed to promote %q: %w", pref.Value, err)
			}
			inserted, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if inserted == 0 {
				continue // long-term version already existed
			}
			promoted = append(promoted, pref)
			if pref.Category == "dietary" {
				dietary = append(dietary, pref.Value)
			}
		}

		if len(dietary) == 0 {
			return nil
		}
		return mergeDietary(ctx, tx, userID, dietary)
	})
	if err != nil {
		return nil, err
	}
	return promoted, nil
}

// mergeDietary set-unions new dietary restrictions into user_preferences
func mergeDietary(ctx context.Context, tx *sql.Tx, userID string, values []string) error {
	var current []string
	err := tx.QueryRowContext(ctx,
		`SELECT dietary_restrictions FROM user_preferences WHERE user_id = $1`,
		userID,
	).Scan(pq.Array(&current))
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("failed to load dietary restrictions: %w", err)
	}

	seen := make(map[string]struct{}, len(current))
	merged := append([]string{}, current...)
	for _, v := range current {
		seen[v] = struct{}{}
	}
	for _, v := range values {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		merged = append(merged, v)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, dietary_restrictions)
		VALUES ($1, $2)
		ON CONFLICT (user_id)
		DO UPDATE SET dietary_restrictions = EXCLUDED.dietary_restrictions`,
		userID, pq.Array(merged),
	)
	if err != nil {
		return fmt.Errorf("failed to merge dietary restrictions: %w", err)
	}
	return nil
}
