package router

import (
	"github.com/arefin88/pulse/backend/internal/cache"
	"github.com/arefin88/pulse/backend/internal/handlers"
	"github.com/arefin88/pulse/backend/internal/middleware"
	"github.com/arefin88/pulse/backend/internal/models"
	"github.com/arefin88/pulse/backend/internal/repositories"
	"github.com/arefin88/pulse/backend/pkg/config"
	"github.com/arefin88/pulse/backend/pkg/firebase"
	"github.com/arefin88/pulse/backend/pkg/logging"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			logging.GetLogger().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *config.DB, uploader firebase.Uploader, cfg *config.Config) error {
	// AutoMigrate PostgreSQL models
	err := db.Postgres.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
	)
	if err != nil {
		return err
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db.Postgres)
	postRepo := repositories.NewPostgresPostRepository(db.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(db.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(db.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(db.Postgres)
	notificationRepo := repositories.NewMongoNotificationRepository(db.Mongo.Database("pulse"))
	tokenRepo := repositories.NewRedisTokenRepository(db.Redis)
	statsCache := cache.New(db.Redis)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))

	authHandler.RegisterProtectedAuthRoutes(api)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(api)

	// Route order matters: /posts/feed must register before /posts/:id
	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, followRepo, likeRepo)
	feedHandler.RegisterFeedRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPostRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, userRepo, notificationRepo)
	likeHandler.RegisterLikeRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	uploadHandler := handlers.NewUploadHandler(uploader, cfg.AvatarBucket, cfg.PostImageBucket)
	uploadHandler.RegisterUploadRoutes(api)

	// --- Admin routes (require admin role) ---
	admin := e.Group("/api/v1")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.RequireAdmin())
	adminHandler := handlers.NewAdminHandler(userRepo, postRepo, likeRepo, commentRepo, statsCache)
	adminHandler.RegisterAdminRoutes(admin)

	logging.GetLogger().Info("All routes configured")
	return nil
}
