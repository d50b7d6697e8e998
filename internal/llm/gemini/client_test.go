package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"materna-backend/internal/llm"
)

func testInput() llm.RecommendInput {
	return llm.RecommendInput{
		EnergyLevel: 2,
		Symptoms:    []string{"back_pain"},
		Moods:       []string{"anxious"},
		CatalogJSON: json.RawMessage(`[{"id":"w-1","title":"Yoga"}]`),
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	client := &Client{
		apiKey:     "test-key",
		model:      "gemini-2.5-flash",
		baseURL:    srv.URL,
		httpClient: srv.Client(),
	}
	return client, srv.Close
}

func TestRecommendStripsCodeFences(t *testing.T) {
	payload := "```json\n{\"recommendations\":[],\"overall_message\":\"take it easy\"}\n```"
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": payload}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})
	defer done()

	raw, err := client.Recommend(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	var parsed struct {
		OverallMessage string `json:"overall_message"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("unmarshal stripped payload: %v", err)
	}
	if parsed.OverallMessage != "take it easy" {
		t.Fatalf("expected overall_message, got %q", parsed.OverallMessage)
	}
}

func TestRecommendClassifiesRateLimit(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"Too many requests"},"details":[{"retryDelay":"20s"}]}`))
	})
	defer done()

	_, err := client.Recommend(context.Background(), testInput())
	if err == nil {
		t.Fatalf("expected error")
	}
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *llm.UpstreamError, got %T", err)
	}
	if upstream.Kind != llm.KindRateLimited {
		t.Fatalf("expected KindRateLimited, got %v", upstream.Kind)
	}
	if upstream.RetryAfter != 20*time.Second {
		t.Fatalf("expected 20s retry delay, got %s", upstream.RetryAfter)
	}
}

func TestRecommendClassifiesDailyQuota(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"Quota exceeded for quota metric GenerateRequestsPerDayPerProjectPerModel"}}`))
	})
	defer done()

	_, err := client.Recommend(context.Background(), testInput())
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *llm.UpstreamError, got %v", err)
	}
	if upstream.Kind != llm.KindDailyQuota {
		t.Fatalf("expected KindDailyQuota, got %v", upstream.Kind)
	}
}

func TestRecommendRejectsUnparseableContent(t *testing.T) {
	client, done := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": "sorry, I cannot help with that"}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	})
	defer done()

	_, err := client.Recommend(context.Background(), testInput())
	var upstream *llm.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected *llm.UpstreamError, got %v", err)
	}
	if upstream.Kind != llm.KindInvalidResponse {
		t.Fatalf("expected KindInvalidResponse, got %v", upstream.Kind)
	}
}

func TestBuildPromptIncludesStateAndCatalog(t *testing.T) {
	input := testInput()
	input.PreferredWorkoutType = "yoga"
	prompt := BuildPrompt(input)

	for _, want := range []string{
		"Energy Level: 2/5",
		"back_pain",
		"anxious",
		"Preferred Workout Type: yoga",
		`"id":"w-1"`,
		"overall_message",
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
