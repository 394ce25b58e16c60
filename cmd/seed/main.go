package main

import (
	"log"

	"heartlink/backend/internal/config"
	"heartlink/backend/internal/database"
)

func main() {
	cfg := config.LoadConfig()

	db := database.Connect(cfg.DatabaseURL)

	if err := database.SeedDemoData(db, cfg); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	log.Println("Seeding completed.")
}
