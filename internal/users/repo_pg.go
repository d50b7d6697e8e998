package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Upsert(ctx context.Context, user User) error {
	const query = `
INSERT INTO users (id, email, full_name, avatar_url, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())
ON CONFLICT (id) DO UPDATE SET
  email = EXCLUDED.email,
  full_name = EXCLUDED.full_name,
  avatar_url = EXCLUDED.avatar_url,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query,
		user.ID,
		user.Email,
		nullableString(user.FullName),
		nullableString(user.AvatarURL),
	)
	return err
}

func (r *PGRepo) GetByID(ctx context.Context, userID string) (User, error) {
	const query = `
SELECT id, email, full_name, avatar_url, bio, created_at, updated_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (User, error) {
	const query = `
UPDATE users SET
  full_name  = COALESCE($2, full_name),
  avatar_url = COALESCE($3, avatar_url),
  bio        = COALESCE($4, bio),
  updated_at = now()
WHERE id = $1
RETURNING id, email, full_name, avatar_url, bio, created_at, updated_at`
	return r.scanOne(r.DB.QueryRowContext(ctx, query,
		userID,
		nullablePtr(update.FullName),
		nullablePtr(update.AvatarURL),
		nullablePtr(update.Bio),
	))
}

func (r *PGRepo) scanOne(row *sql.Row) (User, error) {
	var user User
	var fullName, avatarURL, bio sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(
		&user.ID,
		&user.Email,
		&fullName,
		&avatarURL,
		&bio,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if fullName.Valid {
		user.FullName = fullName.String
	}
	if avatarURL.Valid {
		user.AvatarURL = avatarURL.String
	}
	if bio.Valid {
		user.Bio = bio.String
	}
	if updatedAt.Valid {
		user.UpdatedAt = updatedAt.Time
	} else {
		user.UpdatedAt = time.Now().UTC()
	}
	return user, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullablePtr(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

var _ Repo = (*PGRepo)(nil)
