package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/internal/notification"
	"go-jobboard-backend/internal/repository/memory"
	"go-jobboard-backend/internal/repository/postgres"
	redisrepo "go-jobboard-backend/internal/repository/redis"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/mq"
	"go-jobboard-backend/pkg/obs"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/security"
	"go-jobboard-backend/pkg/storage"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Job Board API
// @version         1.0
// @description     Job postings, applications and resume uploads with cookie sessions.
// @host            localhost:5000
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(slog.LevelInfo)
	logger.Log.Info("Starting job board backend", "port", cfg.Port, "env", cfg.AppEnv)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	audit := security.NewAuditLogger(cfg.ServiceName, cfg.AppEnv)
	defer audit.Sync()

	ctx := context.Background()

	// 3. Tracing
	shutdownTracer, err := obs.InitTracer(ctx, cfg.ServiceName, cfg.AppEnv, cfg.OTLPEndpoint)
	if err != nil {
		logger.Log.Warn("Tracing disabled", "error", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// 4. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		logger.Log.Error("Failed to apply schema", "error", err)
		os.Exit(1)
	}

	healthDeps := map[string]usecase.PingFunc{"database": dbPool.Ping}

	// 5. Sessions: Redis when configured, otherwise process memory
	var sessions domain.SessionRepository
	redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case err == nil:
		defer redisClient.Close()
		sessions = redisrepo.NewSessionRepository(redisClient)
		healthDeps["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Log.Info("Sessions stored in Redis")
	case errors.Is(err, redis.ErrNotConfigured):
		sessions = memory.NewSessionRepository()
	default:
		logger.Log.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	// 6. Resume storage
	var resumes storage.ResumeStorage
	if cfg.StorageDriver == "s3" {
		resumes, err = storage.NewS3Storage(ctx, storage.S3Config{
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
		})
	} else {
		resumes, err = storage.NewLocalStorage(cfg.UploadDir)
	}
	if err != nil {
		logger.Log.Error("Failed to set up resume storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}

	// 7. Domain events
	var events domain.EventPublisher = mq.NopPublisher{}
	if cfg.RabbitURL != "" {
		publisher, err := mq.NewPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			logger.Log.Warn("Event publishing disabled", "error", err)
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	// 8. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 9. Setup UseCases
	validate := validation.Validator()
	hasher := security.BcryptHasher{}
	hub := notification.NewHub()

	authUC := usecase.NewAuthUsecase(userRepo, sessions, hasher,
		auth.NewTokenIssuer(cfg.JWTSecretKey, cfg.JWTExpiry()), hub, events, validate, cfg.SessionTTL())
	userUC := usecase.NewUserUsecase(userRepo, hasher, validate)
	jobUC := usecase.NewJobUsecase(jobRepo, validate)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, events, validate)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		HealthUC:      usecase.NewHealthUsecase(healthDeps),
		Resumes:       resumes,
		Realtime:      notification.NewServer(hub, cfg.ClientURL),
		Audit:         audit,
		Config:        cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Log.Warn("Tracer shutdown failed", "error", err)
	}

	logger.Log.Info("Server exiting", "realtime_clients", hub.Count())
}
