package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/verdora/verdora-backend/internal/cache"
	"github.com/verdora/verdora-backend/internal/db"
	"github.com/verdora/verdora-backend/internal/handlers"
	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/middleware"
	"github.com/verdora/verdora-backend/internal/platform/openai"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/server"
	"github.com/verdora/verdora-backend/internal/services"
	"github.com/verdora/verdora-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	businessDataCSV := utils.GetEnv("BUSINESS_DATA_CSV", "", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	businessRepo := repos.NewBusinessRepo(thePG, log)
	interactionRepo := repos.NewInteractionRepo(thePG, log)
	achievementRepo := repos.NewAchievementRepo(thePG, log)
	favoriteRepo := repos.NewFavoriteRepo(thePG, log)

	// Cache
	log.Info("Setting up result cache from main...")
	var resultCache cache.Cache
	redisCache, err := cache.NewRedisCacheFromEnv(log)
	if err != nil {
		log.Warn("Redis unavailable, using in-process cache", "error", err)
		resultCache = cache.NewMemoryCache()
	} else {
		resultCache = redisCache
		defer redisCache.Close()
	}

	// Services
	log.Info("Setting up Services from main...")
	var aiClient openai.Client
	if client, err := openai.NewClient(log); err != nil {
		log.Warn("Could not init OpenAIClient, recommendations will use fallbacks", "error", err)
	} else {
		aiClient = client
	}
	authService := services.NewAuthService(thePG, log, userRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second)
	interactionService := services.NewInteractionService(thePG, log, interactionRepo)
	directoryService := services.NewDirectoryService(thePG, log, businessRepo, resultCache)
	geoSearchService := services.NewGeoSearchService(thePG, log, businessRepo, interactionService)
	recommendationService := services.NewRecommendationService(thePG, log, interactionService, aiClient, resultCache)
	achievementService := services.NewAchievementService(thePG, log, achievementRepo)
	favoriteService := services.NewFavoriteService(thePG, log, favoriteRepo, businessRepo)
	ingestService := services.NewIngestService(thePG, log, businessRepo)

	// Seed data
	startupCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	if err := achievementService.SeedCatalog(startupCtx); err != nil {
		log.Warn("Achievement seeding failed", "error", err)
	}
	if businessDataCSV != "" {
		if inserted, err := ingestService.LoadCSVIfEmpty(startupCtx, businessDataCSV); err != nil {
			log.Warn("Business data ingest failed", "error", err)
		} else if inserted > 0 {
			log.Info("Seeded business data", "inserted", inserted)
		}
	}
	cancel()

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userRepo)
	businessHandler := handlers.NewBusinessHandler(directoryService, interactionService)
	geoSearchHandler := handlers.NewGeoSearchHandler(geoSearchService)
	metricsHandler := handlers.NewMetricsHandler(directoryService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:           authHandler,
		AuthMiddleware:        authMiddleware,
		UserHandler:           userHandler,
		BusinessHandler:       businessHandler,
		GeoSearchHandler:      geoSearchHandler,
		MetricsHandler:        metricsHandler,
		RecommendationHandler: recommendationHandler,
		AchievementHandler:    achievementHandler,
		InteractionHandler:    interactionHandler,
		FavoriteHandler:       favoriteHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
