package main

import (
	"context"
	"log"
	"time"

	"talentflow/internal/config"
	"talentflow/internal/database/migration"
	dbpostgres "talentflow/internal/database/postgres"
	"talentflow/internal/database/seeder"

	"github.com/joho/godotenv"
)

// Loads demo hiring data into a development database. Safe to rerun;
// every seeder is idempotent.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Printf("component=seed status=done")
}
