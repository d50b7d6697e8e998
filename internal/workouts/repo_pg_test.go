package workouts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "title", "duration_minutes", "intensity_level", "workout_type",
		"description", "good_for_symptoms", "video_url", "created_at",
	}).
		AddRow("11111111-1111-4111-8111-111111111111", "Gentle Prenatal Yoga Flow", 20, "low", "yoga",
			"Slow yoga.", `["back_pain","nausea"]`, nil, created).
		AddRow("44444444-4444-4444-8444-444444444444", "Low-Impact Prenatal Cardio", 25, "medium", "cardio",
			"Gentle cardio.", `["fatigue"]`, "https://example.com/cardio", created)

	mock.ExpectQuery("SELECT id, title, duration_minutes").WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	catalog, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(catalog) != 2 {
		t.Fatalf("expected 2 workouts, got %d", len(catalog))
	}
	if catalog[0].GoodForSymptoms[0] != "back_pain" {
		t.Fatalf("expected back_pain tag, got %v", catalog[0].GoodForSymptoms)
	}
	if catalog[1].VideoURL != "https://example.com/cardio" {
		t.Fatalf("expected video url, got %q", catalog[1].VideoURL)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListAllEmptyIsNotAnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, title, duration_minutes").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "duration_minutes", "intensity_level", "workout_type",
			"description", "good_for_symptoms", "video_url", "created_at",
		}))

	repo := &PGRepo{DB: db}
	catalog, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(catalog) != 0 {
		t.Fatalf("expected empty catalog, got %d entries", len(catalog))
	}
}

func TestPGRepoListAllWrapsIOErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT id, title, duration_minutes").
		WillReturnError(errors.New("connection refused"))

	repo := &PGRepo{DB: db}
	if _, err := repo.ListAll(context.Background()); !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("expected ErrCatalogUnavailable, got %v", err)
	}
}
