package main

import (
	"context"
	"log"

	"github.com/mealsnap/backend/config"
	"github.com/mealsnap/backend/internal/database"
	"github.com/mealsnap/backend/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional; without it rate limiting and summary caching are
	// disabled.
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, continuing without it: %v", err)
		redisClient = nil
	}

	s3Config, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to configure object storage: %v", err)
	}
	if err := s3Config.SetupBucketPolicies(context.Background()); err != nil {
		log.Printf("Failed to apply bucket policies, continuing: %v", err)
	}

	srv := server.NewServer(cfg, db, redisClient, s3Config)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped")
}
