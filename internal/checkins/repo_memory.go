package checkins

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo stores check-ins in memory and is safe for concurrent use. It
// backs dev mode, where DATABASE_URL is unset.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string][]Record
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string][]Record)}
}

// Create stores the record.
func (r *MemoryRepo) Create(ctx context.Context, record Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[record.UserID] = append(r.byUser[record.UserID], record)
	return nil
}

// ListByUser returns a user's check-ins, newest first, truncated to limit.
func (r *MemoryRepo) ListByUser(ctx context.Context, storedUserID string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	r.mu.RLock()
	records := r.byUser[storedUserID]
	r.mu.RUnlock()

	if len(records) == 0 {
		return []Record{}, nil
	}

	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
