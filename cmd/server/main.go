package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"forgebase.backend/internal/config"
	"forgebase.backend/internal/infrastructure/jobs"
	"forgebase.backend/internal/infrastructure/repositories"
	"forgebase.backend/internal/interfaces/http/handlers"
	"forgebase.backend/internal/interfaces/http/middleware"
	"forgebase.backend/internal/usecases"
	"forgebase.backend/pkg/jwt"
	"forgebase.backend/pkg/logger"
	"forgebase.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	projectRepo := repositories.NewProjectRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	usageRepo := repositories.NewUsageRecordRepository(db)

	// Usecases
	statsCache := redis.NewStatsCache(cfg.Usage.CacheTTL)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	projectUsecase := usecases.NewProjectUsecase(projectRepo, apiKeyRepo)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, projectRepo, cfg.ApiKey.ByteLength)
	usageUsecase := usecases.NewUsageStatsUsecase(usageRepo, projectRepo, apiKeyRepo, statsCache)

	// Handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	projectHandler := handlers.NewProjectHandler(projectUsecase)
	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUsecase)
	usageHandler := handlers.NewUsageHandler(usageUsecase)
	serviceHandler := handlers.NewServiceHandler()

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	retentionJob := jobs.NewUsageRetentionJob(usageRepo, cfg.Usage.Retention, cfg.Usage.SweepInterval)
	go retentionJob.Start(ctx)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:    authHandler,
		projectHandler: projectHandler,
		apiKeyHandler:  apiKeyHandler,
		usageHandler:   usageHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService),
	})
	registerServiceRoutes(r, serviceDeps{
		serviceHandler: serviceHandler,
		apiKeyUsecase:  apiKeyUsecase,
		usageUsecase:   usageUsecase,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		retentionJob.Stop()
		cancel()
	}()

	log.Printf("🚀 Forgebase Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 Dashboard API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("🔑 Service API: http://localhost:%s/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
