package workouts

import (
	"context"
	"errors"
)

// ErrCatalogUnavailable marks a structural I/O failure reading the catalog.
// An empty catalog is not an error; zero rows propagate as an empty slice.
var ErrCatalogUnavailable = errors.New("workout catalog unavailable")

// Repo loads the workout catalog.
type Repo interface {
	ListAll(ctx context.Context) ([]Workout, error)
}
