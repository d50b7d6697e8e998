package checkins

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"materna-backend/internal/checkins/recommendations"
	"materna-backend/internal/llm"
	"materna-backend/internal/shared/metrics"
	"materna-backend/internal/shared/telemetry"
	"materna-backend/internal/workouts"
)

// Data sources reported in the check-in response.
const (
	DataSourceDatabase = "database"
	DataSourceStatic   = "static"
)

// Service orchestrates one check-in: validate, load the catalog, try the
// generative recommender (with bounded retry), fall back to the deterministic
// scorer, reconcile, persist, assemble.
type Service struct {
	Repo       Repo
	Catalog    workouts.Repo
	LLM        llm.Client
	RetryLimit int
	DataSource string
}

// Submit processes one check-in submission. A broken generative path never
// surfaces as an error; validation, catalog, and persistence failures do.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}
	metrics.IncCheckInStarted()

	storedID := ToStoredUserID(in.UserID)
	catalog, err := s.Catalog.ListAll(ctx)
	if err != nil {
		metrics.IncCheckInFailed()
		return Result{}, err
	}

	scorerInput := recommendations.Input{
		EnergyLevel: *in.EnergyLevel,
		Symptoms:    in.Symptoms,
		Moods:       in.Moods,
	}
	ranked := recommendations.Rank(catalog, scorerInput)

	start := time.Now()
	parsed, rawReasoning, genErr := s.generate(ctx, in, catalog)
	metrics.ObserveRecommendDurationMs(float64(time.Since(start).Milliseconds()))

	usedFallback := genErr != nil
	var candidates []recommendations.Candidate
	var message string
	if usedFallback {
		metrics.IncFallbackUsed()
		telemetry.Error("generative recommendations failed, using fallback scorer", map[string]any{
			"error":   genErr.Error(),
			"user_id": storedID,
		})
		candidates = recommendations.FallbackCandidates(catalog, scorerInput)
		message = recommendations.FallbackMessage
	} else {
		candidates = recommendations.Reconcile(recommendations.ReconcileInput{
			Catalog:  catalog,
			Proposed: parsed.Recommendations,
			Ranked:   ranked,
		})
		message = strings.TrimSpace(parsed.OverallMessage)
		if message == "" {
			message = recommendations.FallbackMessage
		}
	}

	reasoning := rawReasoning
	if usedFallback {
		reasoning, _ = json.Marshal(modelResponse{
			Recommendations: candidates,
			OverallMessage:  message,
		})
	}

	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.WorkoutID)
	}

	record := Record{
		ID:                    uuid.NewString(),
		UserID:                storedID,
		EnergyLevel:           *in.EnergyLevel,
		Symptoms:              in.Symptoms,
		Moods:                 in.Moods,
		PreferredWorkoutType:  in.PreferredWorkoutType,
		RecommendedWorkoutIDs: ids,
		GeminiReasoning:       reasoning,
		CreatedAt:             time.Now().UTC(),
	}
	if s.Repo != nil {
		if err := s.Repo.Create(ctx, record); err != nil {
			metrics.IncCheckInFailed()
			return Result{}, err
		}
	}
	metrics.IncCheckInCompleted()

	return Result{
		Record:          record,
		Recommendations: joinCandidates(catalog, candidates),
		Message:         message,
		UsedFallback:    usedFallback,
		DataSource:      s.DataSource,
	}, nil
}

// History returns a user's prior check-ins, newest first. Zero prior check-ins
// or an unconfigured backend both yield an empty list, not an error.
func (s *Service) History(ctx context.Context, rawUserID string, limit int) ([]Record, error) {
	if strings.TrimSpace(rawUserID) == "" {
		return nil, &ValidationError{Msg: "userId is required"}
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if s.Repo == nil {
		return []Record{}, nil
	}
	return s.Repo.ListByUser(ctx, ToStoredUserID(rawUserID), limit)
}

// generate runs the generative path: prompt the model through the retry
// wrapper and parse the strict JSON reply. Any error here is the designed
// trigger for the fallback scorer, never a terminal failure.
func (s *Service) generate(ctx context.Context, in SubmitInput, catalog []workouts.Workout) (modelResponse, json.RawMessage, error) {
	if s.LLM == nil {
		return modelResponse{}, nil, llm.ErrNotConfigured
	}

	catalogJSON, err := json.Marshal(catalog)
	if err != nil {
		return modelResponse{}, nil, err
	}

	client := newRetryingClient(s.LLM, s.RetryLimit)
	raw, err := client.Recommend(ctx, llm.RecommendInput{
		EnergyLevel:          *in.EnergyLevel,
		Symptoms:             in.Symptoms,
		Moods:                in.Moods,
		PreferredWorkoutType: in.PreferredWorkoutType,
		CatalogJSON:          catalogJSON,
	})
	if err != nil {
		return modelResponse{}, nil, err
	}

	var parsed modelResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return modelResponse{}, raw, &llm.UpstreamError{
			Kind: llm.KindInvalidResponse,
			Msg:  "model reply is not valid JSON: " + err.Error(),
		}
	}
	if len(parsed.Recommendations) == 0 {
		return modelResponse{}, raw, &llm.UpstreamError{
			Kind: llm.KindInvalidResponse,
			Msg:  "model reply carries no recommendations",
		}
	}
	return parsed, raw, nil
}

func joinCandidates(catalog []workouts.Workout, candidates []recommendations.Candidate) []RecommendedWorkout {
	byID := make(map[string]workouts.Workout, len(catalog))
	for _, w := range catalog {
		byID[w.ID] = w
	}
	out := make([]RecommendedWorkout, 0, len(candidates))
	for _, c := range candidates {
		w, ok := byID[c.WorkoutID]
		if !ok {
			continue
		}
		out = append(out, RecommendedWorkout{Workout: w, Reasoning: c.Reasoning})
	}
	return out
}
