package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/pinframe-inc/pinframe-engine/pkg/config"
	"github.com/pinframe-inc/pinframe-engine/pkg/database"
	"github.com/pinframe-inc/pinframe-engine/pkg/handlers"
	"github.com/pinframe-inc/pinframe-engine/pkg/logging"
	"github.com/pinframe-inc/pinframe-engine/pkg/middleware"
	"github.com/pinframe-inc/pinframe-engine/pkg/realtime"
	"github.com/pinframe-inc/pinframe-engine/pkg/repositories"
	"github.com/pinframe-inc/pinframe-engine/pkg/retry"
	"github.com/pinframe-inc/pinframe-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("bind_addr", cfg.BindAddr),
		zap.String("port", cfg.Port),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.URL())),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The database may still be coming up when the engine starts.
	if err := retry.Do(ctx, nil, func() error {
		return database.RunMigrations(cfg.Database.URL(), logger)
	}); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	db, err := retry.DoWithResult(ctx, nil, func() (*database.DB, error) {
		return database.NewConnection(ctx, &database.Config{
			URL:            cfg.Database.URL(),
			MaxConnections: cfg.Database.MaxConnections,
		})
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	hub := realtime.NewHub(
		cfg.Realtime.SendBufferSize,
		time.Duration(cfg.Realtime.WriteTimeoutSeconds)*time.Second,
		logger,
	)

	// With Redis configured, mutations fan out across engine instances;
	// without it, the local hub serves the single-instance case.
	var broadcaster realtime.Broadcaster = hub
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	if redisClient != nil {
		bridge := realtime.NewBridge(redisClient, hub, logger)
		go bridge.Run(ctx)
		broadcaster = bridge
		logger.Info("Realtime event bridge enabled",
			zap.String("redis_host", cfg.Redis.Host),
		)
	}

	projectRepo := repositories.NewProjectRepository(db)
	pinRepo := repositories.NewPinRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	projectService := services.NewProjectService(projectRepo)
	pinService := services.NewPinService(pinRepo, projectRepo, broadcaster, logger)
	commentService := services.NewCommentService(commentRepo, pinRepo, broadcaster, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewProjectsHandler(projectService, logger).RegisterRoutes(mux)
	handlers.NewPinsHandler(pinService, commentService, logger).RegisterRoutes(mux)
	handlers.NewWebSocketHandler(hub, logger).RegisterRoutes(mux)

	// Serve the built frontend.
	mux.Handle("/", http.FileServer(http.Dir(cfg.UIDir)))

	server := &http.Server{
		Addr:    cfg.BindAddr + ":" + cfg.Port,
		Handler: middleware.RequestLogger(logger)(mux),
	}

	go func() {
		logger.Info("Starting pinframe-engine",
			zap.String("addr", server.Addr),
			zap.String("version", cfg.Version),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown failed", zap.Error(err))
	}
}
