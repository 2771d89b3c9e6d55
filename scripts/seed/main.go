package main

import (
	"fmt"
	"log"

	"github.com/pillpal/med-scheduler/internal/config"
	"github.com/pillpal/med-scheduler/internal/seed"
)

func main() {
	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("\nSample patient IDs for testing:")
	fmt.Println("  11111111-1111-1111-1111-111111111111 (Marta Kovar, 4 medications, preferences set)")
	fmt.Println("  22222222-2222-2222-2222-222222222222 (James Okafor, empty profile)")
}
