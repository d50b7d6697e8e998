package checkins

import (
	"encoding/json"
	"strings"
	"time"

	"materna-backend/internal/checkins/recommendations"
	"materna-backend/internal/workouts"
)

// List bounds for a single submission.
const (
	MaxSymptoms = 5
	MaxMoods    = 3

	minEnergyLevel = 1
	maxEnergyLevel = 5
)

// SubmitInput is the raw check-in payload. EnergyLevel is a pointer so an
// absent field is distinguishable from a literal zero.
type SubmitInput struct {
	UserID               string   `json:"user_id"`
	EnergyLevel          *int     `json:"energy_level"`
	Symptoms             []string `json:"symptoms"`
	Moods                []string `json:"moods"`
	PreferredWorkoutType string   `json:"preferred_workout_type"`
}

// Validate checks presence and bounds, then normalizes the free-text tokens to
// lowercase trimmed form so downstream matching is case and whitespace
// insensitive.
func (in *SubmitInput) Validate() error {
	if strings.TrimSpace(in.UserID) == "" {
		return &ValidationError{Msg: "user_id is required"}
	}
	if in.EnergyLevel == nil {
		return &ValidationError{Msg: "energy_level is required"}
	}
	if *in.EnergyLevel < minEnergyLevel || *in.EnergyLevel > maxEnergyLevel {
		return &ValidationError{Msg: "energy_level must be between 1 and 5"}
	}
	if in.Symptoms == nil {
		return &ValidationError{Msg: "symptoms is required"}
	}
	if len(in.Symptoms) > MaxSymptoms {
		return &ValidationError{Msg: "symptoms accepts at most 5 entries"}
	}
	if in.Moods == nil {
		return &ValidationError{Msg: "moods is required"}
	}
	if len(in.Moods) > MaxMoods {
		return &ValidationError{Msg: "moods accepts at most 3 entries"}
	}
	in.UserID = strings.TrimSpace(in.UserID)
	in.Symptoms = normalizeTokens(in.Symptoms)
	in.Moods = normalizeTokens(in.Moods)
	in.PreferredWorkoutType = strings.TrimSpace(in.PreferredWorkoutType)
	return nil
}

func normalizeTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Record is one persisted check-in. Append-only; GeminiReasoning preserves the
// raw recommendation payload for auditability even when reconciliation
// discarded parts of it.
type Record struct {
	ID                    string          `json:"id"`
	UserID                string          `json:"user_id"`
	EnergyLevel           int             `json:"energy_level"`
	Symptoms              []string        `json:"symptoms"`
	Moods                 []string        `json:"moods"`
	PreferredWorkoutType  string          `json:"preferred_workout_type,omitempty"`
	RecommendedWorkoutIDs []string        `json:"recommended_workout_ids"`
	GeminiReasoning       json.RawMessage `json:"gemini_reasoning,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

// RecommendedWorkout is a catalog entry joined with its reasoning text for the
// response payload.
type RecommendedWorkout struct {
	workouts.Workout
	Reasoning string `json:"reasoning"`
}

// Result is the assembled outcome of one submission.
type Result struct {
	Record          Record
	Recommendations []RecommendedWorkout
	Message         string
	UsedFallback    bool
	DataSource      string
}

// modelResponse is the strict JSON shape the prompt demands from the model.
type modelResponse struct {
	Recommendations []recommendations.Candidate `json:"recommendations"`
	OverallMessage  string                      `json:"overall_message"`
}
