package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mihretgbr/applaud/internal/domain/contract"
	handlerHttp "github.com/mihretgbr/applaud/internal/handler/http"
	redisclient "github.com/mihretgbr/applaud/internal/infrastructure/cache"
	"github.com/mihretgbr/applaud/internal/infrastructure/config"
	"github.com/mihretgbr/applaud/internal/infrastructure/database"
	"github.com/mihretgbr/applaud/internal/infrastructure/logger"
	"github.com/mihretgbr/applaud/internal/infrastructure/migrations"
	"github.com/mihretgbr/applaud/internal/infrastructure/repository/postgres"
	"github.com/mihretgbr/applaud/internal/infrastructure/store"
	"github.com/mihretgbr/applaud/internal/infrastructure/validator"
	"github.com/mihretgbr/applaud/internal/usecase"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig := config.NewConfig()
	appLogger := logger.NewStdLogger()

	if appConfig.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	// Apply the durable store schema before taking traffic.
	migrator, err := migrations.New(appConfig.DatabaseURL, appLogger)
	if err != nil {
		log.Fatalf("Failed to create migrator: %v", err)
	}
	if err := migrator.Up(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, appConfig.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}
	defer pool.Close()

	// Dependency Injection: Repositories and stores
	ratingRepo := postgres.NewRatingRepository(pool)

	// The counter store is optional: without REDIS_URL every operation
	// runs on the durable store alone.
	var counterStore contract.ICounterStore
	var primary contract.ILikeStore
	if appConfig.RedisURL != "" {
		rdb := redisclient.NewRedisFromURL(ctx, appConfig.RedisURL)
		defer redisclient.Close(rdb)
		counterStore = store.NewCounterStore(rdb)
		primary = store.NewCounterLikeStore(counterStore, ratingRepo)
	} else {
		appLogger.Warnf("REDIS_URL not set, running on the durable store only")
	}
	likeStore := store.NewFallbackStore(primary, ratingRepo, appLogger)

	// Dependency Injection: Services and usecases
	appValidator := validator.NewValidator()
	syncWorker := usecase.NewSyncWorker(ratingRepo, appLogger, appConfig.SyncBufferSize)
	defer syncWorker.Shutdown()

	likeUsecase := usecase.NewLikeUsecase(likeStore, syncWorker, appValidator, appLogger)
	reconcileUsecase := usecase.NewReconcileUsecase(ratingRepo, counterStore, appLogger)
	migrateUsecase := usecase.NewMigrateUsecase(ratingRepo, counterStore, appLogger)

	// Setup API routes
	router := gin.Default()
	appRouter := handlerHttp.NewRouter(likeUsecase, reconcileUsecase, migrateUsecase,
		appConfig.JWTSecret, appConfig.RateLimitRPS)
	appRouter.SetupRoutes(router)

	// Start the server
	log.Printf("Server running on port %s", appConfig.Port)
	if err := router.Run(":" + appConfig.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
