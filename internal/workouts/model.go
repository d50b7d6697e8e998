package workouts

import "time"

// Workout is one catalog entry. The catalog is read-only to the check-in core.
type Workout struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	DurationMinutes int       `json:"duration_minutes"`
	IntensityLevel  string    `json:"intensity_level"`
	WorkoutType     string    `json:"workout_type"`
	Description     string    `json:"description"`
	GoodForSymptoms []string  `json:"good_for_symptoms"`
	VideoURL        string    `json:"video_url,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty"`
}
