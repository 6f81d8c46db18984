package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "bbs/internal/adapters/database"
	"bbs/internal/adapters/httpapi"
	"bbs/internal/adapters/logging"
	redisadapter "bbs/internal/adapters/redis"
	"bbs/internal/config"
	commentapp "bbs/internal/core/comment/service"
	"bbs/internal/core/password"
	postapp "bbs/internal/core/post/service"
	"bbs/internal/core/token"
	userapp "bbs/internal/core/user/service"
	outboxPort "bbs/internal/ports/outbox"
	"bbs/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.OpenDatabase(cfg.Database, logger)
	if err != nil {
		logger.Fatal("Error connecting to the database", zap.Error(err))
	}
	if err := config.Migrate(db); err != nil {
		logger.Fatal("Error during migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	redisClient, err := config.OpenRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Fatal("Error connecting to Redis", zap.Error(err))
	}
	defer closeResources(logger, db, redisClient)

	hasher, err := password.NewHasher(cfg.Auth.PasswordScheme)
	if err != nil {
		logger.Fatal("Invalid password scheme", zap.Error(err))
	}
	tokens := token.NewManager([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)

	userRepo := dbadapter.NewUserRepositoryDatabase(db)
	postRepo := dbadapter.NewPostRepositoryDatabase(db)
	commentRepo := dbadapter.NewCommentRepositoryDatabase(db)
	outboxRepo := dbadapter.NewOutboxRepositoryDatabase(db)

	userSvc := userapp.NewUserService(userRepo, outboxRepo, hasher, tokens, logger)
	postSvc := postapp.NewPostService(postRepo, outboxRepo, logger)
	commentSvc := commentapp.NewCommentService(commentRepo, postRepo, outboxRepo, logger)

	var publisher outboxPort.EventPublisher = logging.NewEventPublisherLog(logger)
	if redisClient != nil {
		publisher = redisadapter.NewEventPublisherRedis(redisClient, cfg.Redis.ChannelPrefix, logger)
	}
	outboxWorker := workers.NewOutboxWorker(outboxRepo, publisher, cfg.Outbox.BatchSize, cfg.Outbox.Interval, logger)
	go outboxWorker.Run(ctx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	page := httpapi.Pagination{DefaultLimit: cfg.API.DefaultPageSize, MaxLimit: cfg.API.MaxPageSize}
	r := httpapi.SetupRoutes(userSvc, postSvc, commentSvc, httpapi.Options{
		Tokens:     tokens,
		Pagination: page,
		Logger:     logger,
		Ping:       func(ctx context.Context) error { return config.Ping(ctx, db) },
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("App is running", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed to start", zap.Error(err))
	}
}

// closeResources closes the Redis client and the database pool.
func closeResources(logger *zap.Logger, db *gorm.DB, redisClient *redis.Client) {
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
	if err := config.CloseDatabase(db); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	}
}
