package workouts

import "context"

// StaticRepo serves the embedded default catalog so check-ins keep working when
// no datastore is configured. Ids match the seed migration.
type StaticRepo struct{}

// NewStaticRepo constructs a StaticRepo.
func NewStaticRepo() *StaticRepo {
	return &StaticRepo{}
}

// ListAll returns a copy of the embedded catalog.
func (r *StaticRepo) ListAll(ctx context.Context) ([]Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Workout, len(staticCatalog))
	copy(out, staticCatalog)
	return out, nil
}

var staticCatalog = []Workout{
	{
		ID:              "11111111-1111-4111-8111-111111111111",
		Title:           "Gentle Prenatal Yoga Flow",
		DurationMinutes: 20,
		IntensityLevel:  "low",
		WorkoutType:     "yoga",
		Description:     "Slow, supported yoga poses to ease tension and calm the nervous system.",
		GoodForSymptoms: []string{"back_pain", "nausea"},
	},
	{
		ID:              "22222222-2222-4222-8222-222222222222",
		Title:           "Deep Breathing & Relaxation",
		DurationMinutes: 10,
		IntensityLevel:  "low",
		WorkoutType:     "breathing",
		Description:     "Guided breathing to settle nausea and quiet a racing mind.",
		GoodForSymptoms: []string{"nausea", "fatigue"},
	},
	{
		ID:              "33333333-3333-4333-8333-333333333333",
		Title:           "First Trimester Stretch & Mobility",
		DurationMinutes: 15,
		IntensityLevel:  "low",
		WorkoutType:     "stretching",
		Description:     "Full-body mobility work focused on the lower back and hips.",
		GoodForSymptoms: []string{"back_pain", "cramps"},
	},
	{
		ID:              "44444444-4444-4444-8444-444444444444",
		Title:           "Low-Impact Prenatal Cardio",
		DurationMinutes: 25,
		IntensityLevel:  "medium",
		WorkoutType:     "cardio",
		Description:     "A gentle walking-pace cardio session to lift energy without strain.",
		GoodForSymptoms: []string{"fatigue"},
	},
	{
		ID:              "55555555-5555-4555-8555-555555555555",
		Title:           "Prenatal Pilates Core Foundations",
		DurationMinutes: 30,
		IntensityLevel:  "medium",
		WorkoutType:     "pilates",
		Description:     "Core stability and posture work adapted for early pregnancy.",
		GoodForSymptoms: []string{"back_pain"},
	},
	{
		ID:              "66666666-6666-4666-8666-666666666666",
		Title:           "Prenatal Strength Circuit",
		DurationMinutes: 30,
		IntensityLevel:  "high",
		WorkoutType:     "strength",
		Description:     "Light-resistance full-body circuit for higher-energy days.",
		GoodForSymptoms: []string{"fatigue"},
	},
}

var _ Repo = (*StaticRepo)(nil)
