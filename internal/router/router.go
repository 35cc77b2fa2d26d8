package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/futurepulse/backend/internal/events"
	"github.com/futurepulse/backend/internal/handlers"
	"github.com/futurepulse/backend/internal/middleware"
	"github.com/futurepulse/backend/internal/models"
	"github.com/futurepulse/backend/internal/realtime"
	"github.com/futurepulse/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, jwtSecret string) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Prediction{},
		&models.ReportLike{},
		&models.PredictionLike{},
		&models.Feedback{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(pgdb)
	reportRepo := repositories.NewMongoReportRepository(mgClient.Database("futurepulse"))
	predictionRepo := repositories.NewPostgresPredictionRepository(pgdb)
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	feedbackRepo := repositories.NewPostgresFeedbackRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Realtime fan-out: one registry and dispatcher per process ---
	registry := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(registry)
	notifier := events.NewService(userRepo, reportRepo, predictionRepo, likeRepo, feedbackRepo, notificationRepo, dispatcher)

	// Channel routes (no auth middleware; the notifications route reads
	// its own token query param)
	channelHandler := handlers.NewChannelHandler(registry, notificationRepo, jwtSecret)
	channelHandler.RegisterChannelRoutes(e)
	log.Println("Channel routes configured.")

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(jwtSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Report routes
	reportHandler := handlers.NewReportHandler(reportRepo, userRepo, notifier)
	reportHandler.RegisterReportRoutes(api)
	log.Println("Report routes configured.")

	// Prediction routes
	predictionHandler := handlers.NewPredictionHandler(predictionRepo, userRepo, notifier)
	predictionHandler.RegisterPredictionRoutes(api)
	log.Println("Prediction routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, userRepo, reportRepo, predictionRepo, notifier)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	// Feedback routes
	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepo, userRepo, notifier)
	feedbackHandler.RegisterFeedbackRoutes(api)
	log.Println("Feedback routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
}
