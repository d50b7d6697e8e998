package main

// Applies the embedded schema migrations:
//   go run ./cmd/migrate

import (
	"context"
	"log"

	"materna-backend/internal/shared/config"
	"materna-backend/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}
	log.Printf("migrations applied")
}
