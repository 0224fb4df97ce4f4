package main

import (
	"log"

	"github.com/insyd-labs/notification-service/internal/router"
	"github.com/insyd-labs/notification-service/pkg/config"
	"github.com/insyd-labs/notification-service/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB() // Ensure database connections are closed when main exits

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, cfg, db.Postgres, db.Mongo)

	// Validator
	e.Validator = validators.NewValidator()

	// Optional demo data for local development
	if cfg.SeedDemo {
		if err := config.SeedDemoUsers(db.Postgres); err != nil {
			log.Printf("Demo user seeding failed: %v", err)
		}
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
