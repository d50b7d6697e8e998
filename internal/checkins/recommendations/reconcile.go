package recommendations

import (
	"github.com/google/uuid"

	"materna-backend/internal/workouts"
)

// ReconcileInput carries everything needed to sanitize model output against
// the real catalog.
type ReconcileInput struct {
	Catalog  []workouts.Workout
	Proposed []Candidate
	// Ranked is the preferred backfill order. When nil, catalog order is used.
	Ranked []workouts.Workout
}

// Reconcile filters model-proposed candidates down to ids that actually exist
// in the catalog, then backfills from the heuristic ranking until TopPicks
// entries remain. Surviving valid picks keep the model's reasoning but take
// the catalog title, since models occasionally mangle titles too. Duplicate
// proposals collapse to their first occurrence.
func Reconcile(in ReconcileInput) []Candidate {
	byID := make(map[string]workouts.Workout, len(in.Catalog))
	for _, w := range in.Catalog {
		byID[w.ID] = w
	}

	used := make(map[string]bool, TopPicks)
	out := make([]Candidate, 0, TopPicks)
	for _, c := range in.Proposed {
		if len(out) == TopPicks {
			break
		}
		if !isCanonicalUUID(c.WorkoutID) || used[c.WorkoutID] {
			continue
		}
		w, ok := byID[c.WorkoutID]
		if !ok {
			continue
		}
		used[c.WorkoutID] = true
		out = append(out, Candidate{
			WorkoutID: w.ID,
			Title:     w.Title,
			Reasoning: c.Reasoning,
		})
	}

	backfill := in.Ranked
	if backfill == nil {
		backfill = in.Catalog
	}
	for _, w := range backfill {
		if len(out) == TopPicks {
			break
		}
		if used[w.ID] {
			continue
		}
		used[w.ID] = true
		out = append(out, Candidate{
			WorkoutID: w.ID,
			Title:     w.Title,
			Reasoning: FallbackReasoning,
		})
	}
	return out
}

// isCanonicalUUID accepts only the 36-character hyphenated form, rejecting
// the braced and urn variants the uuid package would otherwise parse.
func isCanonicalUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}
