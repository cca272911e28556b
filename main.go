package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/marwanedjibo1-droid/facturio/cmd"
	"github.com/marwanedjibo1-droid/facturio/internal/config"
	"github.com/marwanedjibo1-droid/facturio/internal/logger"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg := config.Load()
	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cmd.Execute(cfg)
}
