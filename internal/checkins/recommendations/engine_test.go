package recommendations

import (
	"testing"

	"materna-backend/internal/workouts"
)

func fixtureCatalog() []workouts.Workout {
	return []workouts.Workout{
		{
			ID:              "11111111-1111-4111-8111-111111111111",
			Title:           "Gentle Prenatal Yoga Flow",
			IntensityLevel:  "low",
			WorkoutType:     "yoga",
			GoodForSymptoms: []string{"back_pain", "nausea"},
		},
		{
			ID:              "22222222-2222-4222-8222-222222222222",
			Title:           "Deep Breathing & Relaxation",
			IntensityLevel:  "low",
			WorkoutType:     "breathing",
			GoodForSymptoms: []string{"nausea", "fatigue"},
		},
		{
			ID:              "33333333-3333-4333-8333-333333333333",
			Title:           "First Trimester Stretch & Mobility",
			IntensityLevel:  "low",
			WorkoutType:     "stretching",
			GoodForSymptoms: []string{"back_pain", "cramps"},
		},
		{
			ID:              "44444444-4444-4444-8444-444444444444",
			Title:           "Low-Impact Prenatal Cardio",
			IntensityLevel:  "medium",
			WorkoutType:     "cardio",
			GoodForSymptoms: []string{"fatigue"},
		},
		{
			ID:              "55555555-5555-4555-8555-555555555555",
			Title:           "Prenatal Pilates Core Foundations",
			IntensityLevel:  "medium",
			WorkoutType:     "pilates",
			GoodForSymptoms: []string{"back_pain"},
		},
		{
			ID:              "66666666-6666-4666-8666-666666666666",
			Title:           "Prenatal Strength Circuit",
			IntensityLevel:  "high",
			WorkoutType:     "strength",
			GoodForSymptoms: []string{"fatigue"},
		},
	}
}

func TestScoreLowEnergyNauseaAnxiousFavorsCalmingLowIntensity(t *testing.T) {
	catalog := fixtureCatalog()
	in := Input{EnergyLevel: 1, Symptoms: []string{"nausea"}, Moods: []string{"anxious"}}

	// Yoga and breathing both hit the low tier (+3), nausea (+3), and the
	// calming mood bonus (+2).
	for _, i := range []int{0, 1} {
		if got := Score(catalog[i], in); got != 8 {
			t.Fatalf("Score(%s) = %d, want 8", catalog[i].Title, got)
		}
	}
	// Strength: |1-3| leaves +1 intensity, no symptom, no mood bonus.
	if got := Score(catalog[5], in); got != 1 {
		t.Fatalf("Score(strength) = %d, want 1", got)
	}
}

func TestScoreSymptomMatchingIsCaseAndSpaceInsensitive(t *testing.T) {
	w := workouts.Workout{IntensityLevel: "medium", GoodForSymptoms: []string{"Back_Pain"}}
	in := Input{EnergyLevel: 3, Symptoms: []string{"  back_pain "}}
	if got := Score(w, in); got != 6 {
		t.Fatalf("Score = %d, want 6 (3 intensity + 3 symptom)", got)
	}
}

func TestScoreMoodBonusAppliesAtMostOncePerCategory(t *testing.T) {
	w := workouts.Workout{Title: "Calm Yoga Stretch", IntensityLevel: "low", WorkoutType: "yoga"}
	in := Input{EnergyLevel: 1, Moods: []string{"anxious", "moody", "fear"}}
	if got := Score(w, in); got != 5 {
		t.Fatalf("Score = %d, want 5 (3 intensity + single calming bonus)", got)
	}
}

func TestScoreMoodBonusesStackAcrossCategories(t *testing.T) {
	w := workouts.Workout{Title: "Active Calm Flow", IntensityLevel: "medium", WorkoutType: "cardio yoga"}
	in := Input{EnergyLevel: 3, Moods: []string{"anxious", "energetic"}}
	if got := Score(w, in); got != 7 {
		t.Fatalf("Score = %d, want 7 (3 intensity + 2 calming + 2 active)", got)
	}
	// Mood order must not change the result.
	in.Moods = []string{"energetic", "anxious"}
	if got := Score(w, in); got != 7 {
		t.Fatalf("Score after mood reorder = %d, want 7", got)
	}
}

func TestRankIsDeterministicAndStable(t *testing.T) {
	catalog := fixtureCatalog()
	in := Input{EnergyLevel: 2, Symptoms: []string{"back_pain"}, Moods: []string{"anxious"}}

	first := Rank(catalog, in)
	second := Rank(catalog, in)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("rank order changed between runs at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
	// Yoga (3+3+2=8) beats stretch (3+3+2=8)? Both tie at 8; stability keeps
	// catalog order, so yoga stays first.
	if first[0].WorkoutType != "yoga" {
		t.Fatalf("expected yoga first, got %s", first[0].WorkoutType)
	}
	if first[1].WorkoutType != "stretching" {
		t.Fatalf("expected stretching second, got %s", first[1].WorkoutType)
	}
}

func TestFallbackCandidatesReturnsTopThreeWithGenericReasoning(t *testing.T) {
	in := Input{EnergyLevel: 5, Symptoms: []string{"fatigue"}, Moods: []string{"energetic"}}
	picks := FallbackCandidates(fixtureCatalog(), in)
	if len(picks) != TopPicks {
		t.Fatalf("expected %d picks, got %d", TopPicks, len(picks))
	}
	// High energy plus fatigue plus active mood: strength scores 3+3+2=8.
	if picks[0].Title != "Prenatal Strength Circuit" {
		t.Fatalf("expected strength circuit first, got %q", picks[0].Title)
	}
	for _, p := range picks {
		if p.Reasoning != FallbackReasoning {
			t.Fatalf("expected generic reasoning, got %q", p.Reasoning)
		}
	}
}

func TestFallbackCandidatesWithTinyCatalog(t *testing.T) {
	catalog := fixtureCatalog()[:2]
	picks := FallbackCandidates(catalog, Input{EnergyLevel: 3})
	if len(picks) != 2 {
		t.Fatalf("expected 2 picks from a 2-entry catalog, got %d", len(picks))
	}
}
