package recommendations

import (
	"testing"
)

func TestReconcileKeepsValidPicksAndBackfills(t *testing.T) {
	catalog := fixtureCatalog()
	in := Input{EnergyLevel: 1, Symptoms: []string{"nausea"}, Moods: []string{"anxious"}}

	proposed := []Candidate{
		{WorkoutID: "not-a-uuid", Title: "Made Up", Reasoning: "hallucinated"},
		{WorkoutID: "99999999-9999-4999-8999-999999999999", Title: "Ghost Workout", Reasoning: "hallucinated"},
		{WorkoutID: catalog[3].ID, Title: "Wrong Title From Model", Reasoning: "keeps you moving"},
	}

	out := Reconcile(ReconcileInput{
		Catalog:  catalog,
		Proposed: proposed,
		Ranked:   Rank(catalog, in),
	})
	if len(out) != TopPicks {
		t.Fatalf("expected %d candidates, got %d", TopPicks, len(out))
	}
	// The one valid id survives with its model reasoning but the real title.
	if out[0].WorkoutID != catalog[3].ID {
		t.Fatalf("expected surviving valid pick first, got %s", out[0].WorkoutID)
	}
	if out[0].Title != catalog[3].Title {
		t.Fatalf("expected catalog title, got %q", out[0].Title)
	}
	if out[0].Reasoning != "keeps you moving" {
		t.Fatalf("expected model reasoning preserved, got %q", out[0].Reasoning)
	}
	// Backfill follows the heuristic ranking and skips the survivor.
	for _, c := range out[1:] {
		if c.Reasoning != FallbackReasoning {
			t.Fatalf("backfill should carry generic reasoning, got %q", c.Reasoning)
		}
		if c.WorkoutID == catalog[3].ID {
			t.Fatalf("backfill duplicated the surviving pick")
		}
	}
	if out[1].WorkoutID != catalog[0].ID {
		t.Fatalf("expected top-ranked yoga as first backfill, got %s", out[1].WorkoutID)
	}
}

func TestReconcileAllGarbageFallsBackEntirely(t *testing.T) {
	catalog := fixtureCatalog()
	proposed := []Candidate{
		{WorkoutID: "nope"},
		{WorkoutID: "{11111111-1111-4111-8111-111111111111}"},
		{WorkoutID: "urn:uuid:22222222-2222-4222-8222-222222222222"},
	}
	ranked := Rank(catalog, Input{EnergyLevel: 3})
	out := Reconcile(ReconcileInput{Catalog: catalog, Proposed: proposed, Ranked: ranked})
	if len(out) != TopPicks {
		t.Fatalf("expected %d candidates, got %d", TopPicks, len(out))
	}
	for i, c := range out {
		if c.WorkoutID != ranked[i].ID {
			t.Fatalf("candidate %d: expected ranked id %s, got %s", i, ranked[i].ID, c.WorkoutID)
		}
	}
}

func TestReconcileDropsDuplicateProposals(t *testing.T) {
	catalog := fixtureCatalog()
	proposed := []Candidate{
		{WorkoutID: catalog[0].ID, Reasoning: "first"},
		{WorkoutID: catalog[0].ID, Reasoning: "dup"},
		{WorkoutID: catalog[1].ID, Reasoning: "second"},
	}
	out := Reconcile(ReconcileInput{Catalog: catalog, Proposed: proposed})
	if len(out) != TopPicks {
		t.Fatalf("expected %d candidates, got %d", TopPicks, len(out))
	}
	if out[0].Reasoning != "first" || out[1].Reasoning != "second" {
		t.Fatalf("duplicate should collapse to first occurrence: %+v", out[:2])
	}
	seen := map[string]bool{}
	for _, c := range out {
		if seen[c.WorkoutID] {
			t.Fatalf("duplicate id %s in output", c.WorkoutID)
		}
		seen[c.WorkoutID] = true
	}
}

func TestReconcileNeverExceedsCatalogSize(t *testing.T) {
	catalog := fixtureCatalog()[:1]
	out := Reconcile(ReconcileInput{Catalog: catalog})
	if len(out) != 1 {
		t.Fatalf("expected 1 candidate from 1-entry catalog, got %d", len(out))
	}
}

func TestReconcileAcceptsOnlyCanonicalUUIDForm(t *testing.T) {
	if !isCanonicalUUID("11111111-1111-4111-8111-111111111111") {
		t.Fatal("canonical form rejected")
	}
	for _, bad := range []string{
		"11111111111141118111111111111111",
		"{11111111-1111-4111-8111-111111111111}",
		"urn:uuid:11111111-1111-4111-8111-111111111111",
		"",
	} {
		if isCanonicalUUID(bad) {
			t.Fatalf("accepted non-canonical form %q", bad)
		}
	}
}
