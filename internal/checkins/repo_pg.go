package checkins

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo persists check-ins in Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts one record. Write failures wrap ErrPersistence so callers can
// surface them instead of masking a lost check-in.
func (r *PGRepo) Create(ctx context.Context, record Record) error {
	symptoms, err := json.Marshal(record.Symptoms)
	if err != nil {
		return fmt.Errorf("%w: marshal symptoms: %v", ErrPersistence, err)
	}
	moods, err := json.Marshal(record.Moods)
	if err != nil {
		return fmt.Errorf("%w: marshal moods: %v", ErrPersistence, err)
	}
	ids, err := json.Marshal(record.RecommendedWorkoutIDs)
	if err != nil {
		return fmt.Errorf("%w: marshal recommended ids: %v", ErrPersistence, err)
	}

	var reasoning any
	if len(record.GeminiReasoning) > 0 {
		reasoning = []byte(record.GeminiReasoning)
	}
	var preferred any
	if record.PreferredWorkoutType != "" {
		preferred = record.PreferredWorkoutType
	}

	const query = `
INSERT INTO user_check_ins (id, user_id, energy_level, symptoms, moods, preferred_workout_type, recommended_workout_ids, gemini_reasoning, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.EnergyLevel,
		symptoms,
		moods,
		preferred,
		ids,
		reasoning,
		record.CreatedAt,
	); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// ListByUser returns a user's check-ins, newest first, truncated to limit.
func (r *PGRepo) ListByUser(ctx context.Context, storedUserID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	const query = `
SELECT id, user_id, energy_level, symptoms, moods, preferred_workout_type, recommended_workout_ids, gemini_reasoning, created_at
FROM user_check_ins
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, storedUserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var rec Record
		var symptoms, moods, ids []byte
		var preferred sql.NullString
		var reasoning []byte
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.EnergyLevel,
			&symptoms,
			&moods,
			&preferred,
			&ids,
			&reasoning,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(symptoms, &rec.Symptoms); err != nil {
			rec.Symptoms = nil
		}
		if err := json.Unmarshal(moods, &rec.Moods); err != nil {
			rec.Moods = nil
		}
		if err := json.Unmarshal(ids, &rec.RecommendedWorkoutIDs); err != nil {
			rec.RecommendedWorkoutIDs = nil
		}
		if preferred.Valid {
			rec.PreferredWorkoutType = preferred.String
		}
		if len(reasoning) > 0 {
			rec.GeminiReasoning = json.RawMessage(reasoning)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
