package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/handlers"
	"github.com/verdora/verdora-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler           *handlers.AuthHandler
	AuthMiddleware        *middleware.AuthMiddleware
	UserHandler           *handlers.UserHandler
	BusinessHandler       *handlers.BusinessHandler
	GeoSearchHandler      *handlers.GeoSearchHandler
	MetricsHandler        *handlers.MetricsHandler
	RecommendationHandler *handlers.RecommendationHandler
	AchievementHandler    *handlers.AchievementHandler
	InteractionHandler    *handlers.InteractionHandler
	FavoriteHandler       *handlers.FavoriteHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-ID"},
		AllowCredentials: true,
	}))
	router.Use(middleware.AttachRequestContext())

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)

		// Directory browsing personalizes when a token is present but
		// never requires one.
		browse := api.Group("/")
		browse.Use(cfg.AuthMiddleware.OptionalAuth())
		browse.GET("/businesses", cfg.BusinessHandler.List)
		browse.POST("/search/nearby", cfg.GeoSearchHandler.SearchNearby)

		api.GET("/businesses/filters", cfg.BusinessHandler.FilterOptions)
		api.GET("/metrics/summary", cfg.MetricsHandler.Summary)
		api.GET("/metrics/top", cfg.MetricsHandler.TopPerformers)
		api.GET("/metrics/states", cfg.MetricsHandler.StateAverages)
		api.GET("/achievements", cfg.AchievementHandler.List)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// User
	protected.GET("/user", cfg.UserHandler.GetCurrent)
	protected.GET("/user/achievements", cfg.AchievementHandler.ListForUser)
	protected.GET("/user/interactions", cfg.InteractionHandler.History)
	// Favorites
	protected.GET("/user/favorites", cfg.FavoriteHandler.List)
	protected.POST("/user/favorites/:businessID", cfg.FavoriteHandler.Add)
	protected.DELETE("/user/favorites/:businessID", cfg.FavoriteHandler.Remove)
	// Tracking + personalization
	protected.POST("/interactions", cfg.InteractionHandler.Record)
	protected.GET("/recommendations", cfg.RecommendationHandler.Generate)

	return router
}
