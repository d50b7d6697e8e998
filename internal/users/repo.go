package users

import (
	"context"
	"errors"
)

// ErrNotFound reports that no user row exists for the given id.
var ErrNotFound = errors.New("user not found")

// Repo persists user identities and their editable profile fields.
type Repo interface {
	// Upsert inserts the user or refreshes the OAuth-sourced fields of an
	// existing row without touching profile edits.
	Upsert(ctx context.Context, user User) error
	GetByID(ctx context.Context, userID string) (User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (User, error)
}
