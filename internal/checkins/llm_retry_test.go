package checkins

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"materna-backend/internal/llm"
)

type scriptedClient struct {
	calls int
	errs  []error
	resp  json.RawMessage
}

func (c *scriptedClient) Recommend(ctx context.Context, input llm.RecommendInput) (json.RawMessage, error) {
	call := c.calls
	c.calls++
	if call < len(c.errs) && c.errs[call] != nil {
		return nil, c.errs[call]
	}
	return c.resp, nil
}

func newTestRetrier(base llm.Client, limit int, slept *[]time.Duration) llm.Client {
	r := newRetryingClient(base, limit).(*retryingClient)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return r
}

func TestRetryUsesServerSuggestedDelay(t *testing.T) {
	base := &scriptedClient{
		errs: []error{errors.New("quota exceeded, please retry in 5s")},
		resp: json.RawMessage(`{"recommendations":[]}`),
	}
	var slept []time.Duration
	client := newTestRetrier(base, 1, &slept)

	resp, err := client.Recommend(context.Background(), llm.RecommendInput{})
	if err != nil {
		t.Fatalf("Recommend after retry: %v", err)
	}
	if len(resp) == 0 {
		t.Fatal("expected response after retry")
	}
	if base.calls != 2 {
		t.Fatalf("expected exactly one retry (2 calls), got %d calls", base.calls)
	}
	if len(slept) != 1 || slept[0] != 5*time.Second {
		t.Fatalf("expected one 5s sleep, got %v", slept)
	}
}

func TestRetryDefaultsAndClampsDelay(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want time.Duration
	}{
		{
			name: "no suggestion uses default",
			err:  &llm.UpstreamError{Kind: llm.KindRateLimited, Msg: "too many requests"},
			want: retryDefaultDelay,
		},
		{
			name: "huge suggestion is clamped",
			err:  &llm.UpstreamError{Kind: llm.KindRateLimited, RetryAfter: 5 * time.Minute, Msg: "too many requests"},
			want: retryMaxDelay,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			base := &scriptedClient{errs: []error{tc.err}, resp: json.RawMessage(`{}`)}
			var slept []time.Duration
			client := newTestRetrier(base, 1, &slept)
			if _, err := client.Recommend(context.Background(), llm.RecommendInput{}); err != nil {
				t.Fatalf("Recommend: %v", err)
			}
			if len(slept) != 1 || slept[0] != tc.want {
				t.Fatalf("expected sleep %v, got %v", tc.want, slept)
			}
		})
	}
}

func TestRetryNeverRetriesDailyQuota(t *testing.T) {
	// The message also matches the rate-limit patterns; the daily wording wins.
	base := &scriptedClient{
		errs: []error{errors.New("quota exceeded: GenerateRequestsPerDayPerProjectPerModel")},
	}
	var slept []time.Duration
	client := newTestRetrier(base, 3, &slept)

	if _, err := client.Recommend(context.Background(), llm.RecommendInput{}); err == nil {
		t.Fatal("expected error to propagate")
	}
	if base.calls != 1 {
		t.Fatalf("daily quota must not be retried, got %d calls", base.calls)
	}
	if len(slept) != 0 {
		t.Fatalf("expected no sleeps, got %v", slept)
	}
}

func TestRetryNeverRetriesOtherErrors(t *testing.T) {
	base := &scriptedClient{errs: []error{errors.New("connection refused")}}
	var slept []time.Duration
	client := newTestRetrier(base, 2, &slept)

	if _, err := client.Recommend(context.Background(), llm.RecommendInput{}); err == nil {
		t.Fatal("expected error to propagate")
	}
	if base.calls != 1 {
		t.Fatalf("non-rate-limit errors must not be retried, got %d calls", base.calls)
	}
}

func TestRetryStopsAtLimit(t *testing.T) {
	rateLimited := &llm.UpstreamError{Kind: llm.KindRateLimited, Msg: "too many requests"}
	base := &scriptedClient{errs: []error{rateLimited, rateLimited, rateLimited, rateLimited}}
	var slept []time.Duration
	client := newTestRetrier(base, 1, &slept)

	if _, err := client.Recommend(context.Background(), llm.RecommendInput{}); err == nil {
		t.Fatal("expected exhausted retries to propagate the error")
	}
	if base.calls != 2 {
		t.Fatalf("limit 1 means 2 calls total, got %d", base.calls)
	}
}

func TestRetryAbortsWhenContextCancelled(t *testing.T) {
	base := &scriptedClient{
		errs: []error{&llm.UpstreamError{Kind: llm.KindRateLimited, Msg: "too many requests"}},
	}
	r := newRetryingClient(base, 1).(*retryingClient)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Recommend(ctx, llm.RecommendInput{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if base.calls != 1 {
		t.Fatalf("expected no second call after cancellation, got %d", base.calls)
	}
}
