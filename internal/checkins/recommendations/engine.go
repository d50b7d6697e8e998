package recommendations

import (
	"regexp"
	"sort"
	"strings"

	"materna-backend/internal/workouts"
)

// Intensity tiers used by the scorer. Catalog rows store a free-ish string,
// which intensityTier normalizes before comparison.
const (
	tierLow    = 1
	tierMedium = 2
	tierHigh   = 3
)

// Moods that pull toward calming activity versus more active movement.
var calmingMoods = map[string]bool{
	"anxious":    true,
	"fear":       true,
	"moody":      true,
	"frustrated": true,
}

var activeMoods = map[string]bool{
	"energetic":  true,
	"productive": true,
	"happy":      true,
}

var (
	calmingActivity = regexp.MustCompile(`yoga|stretch|breathing|calm|mobility`)
	activeActivity  = regexp.MustCompile(`cardio|strength|pilates|active`)
)

// desiredTier maps a 1..5 energy level to an intensity tier.
func desiredTier(energyLevel int) int {
	switch {
	case energyLevel <= 2:
		return tierLow
	case energyLevel == 3:
		return tierMedium
	default:
		return tierHigh
	}
}

func intensityTier(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "low", "1":
		return tierLow
	case "high", "3":
		return tierHigh
	default:
		return tierMedium
	}
}

// Score rates one workout against the user's current state. Higher is better.
// The weights favor symptom relief over intensity fit over mood alignment.
func Score(w workouts.Workout, in Input) int {
	score := 0

	diff := desiredTier(in.EnergyLevel) - intensityTier(w.IntensityLevel)
	if diff < 0 {
		diff = -diff
	}
	if v := 3 - diff; v > 0 {
		score += v
	}

	goodFor := make(map[string]bool, len(w.GoodForSymptoms))
	for _, s := range w.GoodForSymptoms {
		goodFor[normalizeToken(s)] = true
	}
	for _, s := range in.Symptoms {
		if goodFor[normalizeToken(s)] {
			score += 3
		}
	}

	// The calming and active bonuses are independent: a workout whose text
	// matches both patterns earns both when the moods span both sets.
	activity := strings.ToLower(w.WorkoutType + " " + w.Title)
	var calming, active bool
	for _, m := range in.Moods {
		mood := normalizeToken(m)
		calming = calming || calmingMoods[mood]
		active = active || activeMoods[mood]
	}
	if calming && calmingActivity.MatchString(activity) {
		score += 2
	}
	if active && activeActivity.MatchString(activity) {
		score += 2
	}

	return score
}

// Rank orders the catalog by descending score. The sort is stable so equal
// scores keep catalog order, which keeps the fallback path deterministic.
func Rank(catalog []workouts.Workout, in Input) []workouts.Workout {
	ranked := make([]workouts.Workout, len(catalog))
	copy(ranked, catalog)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(ranked[i], in) > Score(ranked[j], in)
	})
	return ranked
}

// FallbackCandidates returns the heuristic top picks with generic reasoning.
func FallbackCandidates(catalog []workouts.Workout, in Input) []Candidate {
	ranked := Rank(catalog, in)
	if len(ranked) > TopPicks {
		ranked = ranked[:TopPicks]
	}
	out := make([]Candidate, 0, len(ranked))
	for _, w := range ranked {
		out = append(out, Candidate{
			WorkoutID: w.ID,
			Title:     w.Title,
			Reasoning: FallbackReasoning,
		})
	}
	return out
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
