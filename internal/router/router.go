package router

import (
	"log"

	"github.com/insyd-labs/notification-service/internal/dispatch"
	"github.com/insyd-labs/notification-service/internal/handlers"
	"github.com/insyd-labs/notification-service/internal/models"
	"github.com/insyd-labs/notification-service/internal/realtime"
	"github.com/insyd-labs/notification-service/internal/repositories"
	"github.com/insyd-labs/notification-service/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Logger())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client) {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(&models.User{}, &models.Notification{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb, cfg.StoreTimeout)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb, cfg.StoreTimeout)

	var eventLogRepo repositories.EventLogRepository = repositories.NoopEventLogRepository{}
	if mgClient != nil {
		eventLogRepo = repositories.NewMongoEventLogRepository(mgClient.Database("insyd"), cfg.StoreTimeout)
		log.Println("Event journal enabled (MongoDB).")
	}

	// --- Live delivery and dispatch ---
	hub := realtime.NewHub()
	engine := dispatch.NewEngine(userRepo, notificationRepo, eventLogRepo, hub)

	api := e.Group("/api/v1")

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	eventHandler := handlers.NewEventHandler(engine)
	eventHandler.RegisterEventRoutes(api)
	log.Println("Event routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	wsHandler := handlers.NewWSHandler(hub, cfg.WSSendBuffer)
	wsHandler.RegisterWSRoutes(e)
	log.Println("Websocket endpoint configured.")

	log.Println("All routes configured.")
}
