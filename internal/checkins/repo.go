package checkins

import "context"

// DefaultHistoryLimit bounds history queries when the caller sends none.
const DefaultHistoryLimit = 30

// Repo persists check-in records. Records are append-only.
type Repo interface {
	Create(ctx context.Context, record Record) error
	ListByUser(ctx context.Context, storedUserID string, limit int) ([]Record, error)
}
