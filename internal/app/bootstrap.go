package app

import (
	"backend/internal/app/health"
	"backend/internal/app/message"
	"backend/internal/app/session"
	"backend/internal/app/user"
	"backend/internal/config"
	"backend/internal/db"
	"backend/internal/db/seeder"
	"backend/internal/gateways/websocket"
	"backend/internal/middleware"
	"backend/internal/providers/minio"
	"backend/internal/providers/redis"
	"backend/internal/router"
	"backend/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
	Hub    *websocket.Hub
}

func Bootstrap(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	seed := seeder.NewSeeder(dbConn, logger)
	if err := seed.Seed(); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	minioProvider, err := minio.NewMinioProvider(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize MinIO provider, attachments disabled", zap.Error(err))
		minioProvider = nil
	}
	eventBus := utils.NewEventBus()

	sessionRepo := session.NewRepository(dbConn)
	userRepo := user.NewRepository(dbConn)
	messageRepo := message.NewRepository(dbConn)

	sessionService := session.NewService(sessionRepo)
	userService := user.NewService(userRepo, redisProvider, minioProvider, logger)
	messageService := message.NewService(messageRepo, redisProvider, minioProvider, eventBus, logger)

	registry := websocket.NewRegistry()
	hub := websocket.NewHub(logger, registry, eventBus, messageService, sessionService)
	go hub.Run()

	healthHandler := health.NewHandler(&utils.HealthChecker{
		DB:    dbConn,
		Redis: redisProvider.Client,
	})
	sessionHandler := session.NewHandler(sessionService)
	userHandler := user.NewHandler(userService, logger)
	messageHandler := message.NewHandler(messageService, userService, minioProvider, logger)

	auth := middleware.Auth(sessionService, logger)

	r := router.NewRouter(logger)
	r.RegisterHealthRoutes(healthHandler)
	r.RegisterWebSocketRoutes(hub)
	r.RegisterSessionRoutes(sessionHandler)
	r.RegisterUserRoutes(userHandler, auth)
	r.RegisterMessageRoutes(messageHandler, auth)

	return &Application{
		Router: r,
		DB:     dbConn,
		Hub:    hub,
	}, nil
}
