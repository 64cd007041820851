package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sabytin_backend/database"
	"sabytin_backend/internal/auth"
	"sabytin_backend/internal/cache"
	"sabytin_backend/internal/config"
	"sabytin_backend/internal/email"
	"sabytin_backend/internal/handlers"
	"sabytin_backend/internal/logger"
	"sabytin_backend/internal/middleware"
	"sabytin_backend/internal/repositories"
	chatrepo "sabytin_backend/internal/repositories/chat"
	"sabytin_backend/internal/routes"
	"sabytin_backend/internal/services"
	"sabytin_backend/internal/storage"
	"sabytin_backend/internal/validator"
	"sabytin_backend/ws"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}
	logger.Info("Database connected and migrated")

	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		logger.Fatal("Redis unavailable", "error", err)
	}
	logger.Info("Redis connected", "addr", cfg.Redis.Addr)

	ginRouter := SetupRouter(cfg, gormDB, redisCache)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, redisCache *cache.RedisCache) *gin.Engine {
	store, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	tokens := auth.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.TTL)*time.Minute,
		time.Duration(cfg.JWT.ResetTTL)*time.Minute,
	)

	serviceContainer := initializeServices(cfg, gormDB, redisCache, tokens, store)
	wsManager := ws.NewManager(serviceContainer.ChatService)
	go wsManager.Run(context.Background())
	wsHandler := ws.NewHandler(wsManager, serviceContainer.ChatService)

	appHandlers := initializeHandlers(serviceContainer, wsHandler)

	ginRouter := initializeGinRouter(cfg)
	authMW := middleware.AuthMiddleware(tokens)
	routes.RegisterRoutes(ginRouter, appHandlers, authMW)

	return ginRouter
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	redisCache *cache.RedisCache,
	tokens *auth.TokenManager,
	store storage.Storage,
) *services.ServiceContainer {
	var emailService email.Provider
	if cfg.Email.SMTPUsername == "" {
		logger.Warn("SMTP credentials are not set, emails will be logged instead of sent")
		emailService = &LoggingEmailProvider{}
	} else {
		provider, err := email.NewGomailProvider(cfg)
		if err != nil {
			logger.Fatal("Failed to initialize email provider", "error", err)
		}
		emailService = provider
	}

	userRepo := repositories.NewUserRepository(gormDB)
	reactionRepo := repositories.NewReactionRepository(gormDB)
	candidateRepo := repositories.NewCandidateRepository(gormDB)
	filterRepo := repositories.NewFilterRepository(gormDB)
	eventRepo := repositories.NewEventRepository(gormDB)
	channelRepo := repositories.NewChannelRepository(gormDB)
	photoRepo := repositories.NewPhotoRepository(gormDB)
	dialogueRepo := chatrepo.NewDialogueRepository(gormDB)
	messageRepo := chatrepo.NewMessageRepository(gormDB)

	baseURL := fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
	resetTTL := time.Duration(cfg.JWT.ResetTTL) * time.Minute
	attemptWindow := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	return &services.ServiceContainer{
		AuthService: services.NewAuthService(
			userRepo, filterRepo, tokens, redisCache, emailService,
			baseURL, cfg.RateLimit.LoginAttempts, attemptWindow,
		),
		PasswordResetService: services.NewPasswordResetService(
			userRepo, tokens, redisCache, emailService, baseURL, resetTTL,
		),
		UserService:      services.NewUserService(userRepo),
		ReactionService:  services.NewReactionService(gormDB, reactionRepo, userRepo, dialogueRepo),
		CandidateService: services.NewCandidateService(candidateRepo, filterRepo, reactionRepo, userRepo, photoRepo),
		FilterService:    services.NewFilterService(filterRepo),
		EventService:     services.NewEventService(eventRepo),
		ChannelService:   services.NewChannelService(channelRepo),
		ChatService:      services.NewChatService(dialogueRepo, messageRepo),
		PhotoService:     services.NewPhotoService(photoRepo, store, cfg.Upload.MaxSize, cfg.Upload.AllowedTypes),
		EmailService:     emailService,
	}
}

func initializeHandlers(sc *services.ServiceContainer, wsHandler *ws.Handler) *handlers.AppHandlers {
	base := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:      handlers.NewAuthHandler(base, sc.AuthService, sc.PasswordResetService),
		AlgorithmHandler: handlers.NewAlgorithmHandler(base, sc.ReactionService, sc.CandidateService, sc.FilterService, sc.UserService),
		UserHandler:      handlers.NewUserHandler(base, sc.UserService),
		EventHandler:     handlers.NewEventHandler(base, sc.EventService),
		ChannelHandler:   handlers.NewChannelHandler(base, sc.ChannelService),
		ChatHandler:      handlers.NewChatHandler(base, sc.ChatService, wsHandler.ServeWS),
		PhotoHandler:     handlers.NewPhotoHandler(base, sc.PhotoService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())
	ginRouter.Use(middleware.TimeoutMiddleware(time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second))

	return ginRouter
}
