package checkins

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"materna-backend/internal/llm"
)

const (
	retryDefaultDelay = 2 * time.Second
	retryMaxDelay     = 30 * time.Second
)

// retryingClient wraps an llm.Client with the bounded retry protocol: at most
// limit retries, only for rate-limit failures that are not daily-quota
// exhaustion. The delay honors the server suggestion when the provider parsed
// one, else falls back to a fixed default, and is always clamped so a hostile
// suggestion cannot stall the request.
type retryingClient struct {
	base  llm.Client
	limit int
	sleep func(ctx context.Context, d time.Duration) error
}

func newRetryingClient(base llm.Client, limit int) llm.Client {
	if base == nil {
		return nil
	}
	if limit < 0 {
		limit = 0
	}
	return &retryingClient{base: base, limit: limit, sleep: sleepContext}
}

func (r *retryingClient) Recommend(ctx context.Context, input llm.RecommendInput) (json.RawMessage, error) {
	resp, err := r.base.Recommend(ctx, input)
	for attempt := 1; err != nil && attempt <= r.limit; attempt++ {
		kind, retryAfter := llm.Classify(err)
		if kind != llm.KindRateLimited {
			break
		}
		delay := retryAfter
		if delay <= 0 {
			delay = retryDefaultDelay
		}
		if delay > retryMaxDelay {
			delay = retryMaxDelay
		}
		log.Printf("llm rate limited, retrying attempt=%d delay=%s error=%v", attempt, delay, err)
		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return nil, sleepErr
		}
		resp, err = r.base.Recommend(ctx, input)
	}
	return resp, err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
