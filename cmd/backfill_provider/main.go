package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"servicehub/internal/config"
	"servicehub/internal/database"
	"servicehub/internal/repository"
)

// backfill_provider copies service_listings.provider_id onto bookings created without one.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL, nil)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	n, err := repository.NewBookingRepository(db).BackfillProviderIDs(ctx)
	if err != nil {
		log.Fatalf("backfill failed: %v", err)
	}

	log.Printf("provider backfill completed: bookings=%d", n)
}
