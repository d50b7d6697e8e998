package llm

import (
	"context"
	"encoding/json"
	"errors"
)

// Client abstracts generative-model providers for workout recommendations.
type Client interface {
	Recommend(ctx context.Context, input RecommendInput) (json.RawMessage, error)
}

// RecommendInput captures the user's reported state plus the serialized catalog.
type RecommendInput struct {
	EnergyLevel          int
	Symptoms             []string
	Moods                []string
	PreferredWorkoutType string
	CatalogJSON          json.RawMessage
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("llm client not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Recommend returns ErrNotConfigured.
func (PlaceholderClient) Recommend(ctx context.Context, input RecommendInput) (json.RawMessage, error) {
	_ = ctx
	_ = input
	return nil, ErrNotConfigured
}
