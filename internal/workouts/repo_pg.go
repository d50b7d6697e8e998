package workouts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// PGRepo loads the catalog from Postgres.
type PGRepo struct {
	DB *sql.DB
}

// ListAll returns every workout, in insertion order.
func (r *PGRepo) ListAll(ctx context.Context) ([]Workout, error) {
	const query = `
SELECT id, title, duration_minutes, intensity_level, workout_type, description, good_for_symptoms, video_url, created_at
FROM workouts
ORDER BY created_at, id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	defer rows.Close()

	out := []Workout{}
	for rows.Next() {
		var w Workout
		var description sql.NullString
		var goodFor sql.NullString
		var videoURL sql.NullString
		if err := rows.Scan(
			&w.ID,
			&w.Title,
			&w.DurationMinutes,
			&w.IntensityLevel,
			&w.WorkoutType,
			&description,
			&goodFor,
			&videoURL,
			&w.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		if description.Valid {
			w.Description = description.String
		}
		if goodFor.Valid {
			if err := json.Unmarshal([]byte(goodFor.String), &w.GoodForSymptoms); err != nil {
				w.GoodForSymptoms = nil
			}
		}
		if videoURL.Valid {
			w.VideoURL = videoURL.String
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return out, nil
}

var _ Repo = (*PGRepo)(nil)
