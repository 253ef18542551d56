package main

import (
	"context"
	"log"

	"github.com/arefin88/pulse/backend/internal/router"
	"github.com/arefin88/pulse/backend/pkg/config"
	"github.com/arefin88/pulse/backend/pkg/firebase"
	"github.com/arefin88/pulse/backend/pkg/logging"
	"github.com/arefin88/pulse/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logging.InitLogger(cfg.Env, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := logging.GetLogger()
	defer logger.Sync()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		logger.Fatal("Failed to initialize databases", zap.Error(err))
	}
	defer db.CloseDB()

	// Initialize Firebase (object storage for uploads)
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase", zap.Error(err))
	}

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, db, firebaseApp, cfg); err != nil {
		logger.Fatal("Failed to set up routes", zap.Error(err))
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
