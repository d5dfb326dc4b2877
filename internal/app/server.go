// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"

	"alamin-service/internal/config"
	"alamin-service/internal/db"
	domclient "alamin-service/internal/domain/client"
	dominsurance "alamin-service/internal/domain/insurance"
	authHandler "alamin-service/internal/handlers/auth"
	clientHandler "alamin-service/internal/handlers/client"
	insuranceHandler "alamin-service/internal/handlers/insurance"
	reminderHandler "alamin-service/internal/handlers/reminder"
	statsHandler "alamin-service/internal/handlers/stats"
	syncHandler "alamin-service/internal/handlers/sync"
	wsHandler "alamin-service/internal/handlers/websocket"
	"alamin-service/internal/middleware"
	"alamin-service/internal/pkg/cache"
	"alamin-service/internal/pkg/idgen"
	"alamin-service/internal/pkg/jwt"
	"alamin-service/internal/pkg/session"
	"alamin-service/internal/repository/postgres"
	authUsecase "alamin-service/internal/service/auth"
	clientUsecase "alamin-service/internal/service/client"
	insuranceUsecase "alamin-service/internal/service/insurance"
	reminderUsecase "alamin-service/internal/service/reminder"
	syncUsecase "alamin-service/internal/service/sync"
	"alamin-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.NewPostgresPool(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, s.cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()

	// ----- JWT & Sessions -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}
	sessionManager := session.NewManager(redisClient, jwtManager.TTL())

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	userRepo := postgres.NewUserRepository(dbWrapper)
	clientRepo := postgres.NewClientRepository(dbWrapper)
	insuranceRepo := postgres.NewInsuranceRepository(dbWrapper)
	reminderRepo := postgres.NewReminderRepository(dbWrapper)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(jwtManager, sessionManager, logger)
	go hub.Run(ctx)
	publisher := websocket.NewPublisher(hub)

	// ----- Caches & ID generation -----
	clientCache := cache.New[[]domclient.Client](s.cfg.CacheTTL, nil)
	insuranceCache := cache.New[[]dominsurance.Company](s.cfg.CacheTTL, nil)
	gen := idgen.New(nil)

	// ----- Services -----
	authService := authUsecase.NewAuthService(userRepo, jwtManager, sessionManager, logger)
	clientService := clientUsecase.NewClientService(clientRepo, clientCache, gen, publisher, logger)
	insuranceService := insuranceUsecase.NewInsuranceService(insuranceRepo, insuranceCache, gen, publisher, logger)
	syncService := syncUsecase.NewSyncService(dbWrapper, clientRepo, insuranceRepo, clientCache, insuranceCache, publisher, logger)
	scheduler := reminderUsecase.NewScheduler(clientService, reminderRepo, publisher, s.cfg.ReminderInterval, logger)

	if s.cfg.RemindersEnabled {
		go scheduler.Run(ctx)
	} else {
		logger.Info("reminder scheduler disabled by configuration")
	}

	// ----- Seed manager account -----
	if err := authService.EnsureSeedManager(ctx,
		s.cfg.SeedManagerUsername, s.cfg.SeedManagerName, s.cfg.SeedManagerPassword); err != nil {
		logger.Error("failed to seed manager account", zap.Error(err))
	}

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:      authHandler.NewAuthHandler(authService),
		ClientHandler:    clientHandler.NewClientHandler(clientService),
		InsuranceHandler: insuranceHandler.NewInsuranceHandler(insuranceService),
		SyncHandler:      syncHandler.NewSyncHandler(syncService),
		ReminderHandler:  reminderHandler.NewReminderHandler(scheduler),
		StatsHandler:     statsHandler.NewStatsHandler(clientService, insuranceService),
		WSHandler:        wsHandler.NewWebSocketHandler(hub, logger),
		AuthMiddleware:   middleware.NewAuthMiddleware(authService),
	}

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}
