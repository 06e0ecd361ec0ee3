package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"forgebase.backend/internal/domain/entities"
	"forgebase.backend/internal/interfaces/http/handlers"
	"forgebase.backend/internal/interfaces/http/middleware"
	"forgebase.backend/internal/usecases"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	projectHandler *handlers.ProjectHandler
	apiKeyHandler  *handlers.ApiKeyHandler
	usageHandler   *handlers.UsageHandler
	authMiddleware gin.HandlerFunc
}

type serviceDeps struct {
	serviceHandler *handlers.ServiceHandler
	apiKeyUsecase  *usecases.ApiKeyUsecase
	usageUsecase   *usecases.UsageStatsUsecase
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-API-Key, X-Project-ID, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "forgebase-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerAPIV1Routes wires the dashboard surface: session-authenticated
// management of projects, keys and usage analytics.
func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Project routes (protected)
		projects := v1.Group("/projects")
		projects.Use(d.authMiddleware)
		{
			projects.POST("", d.projectHandler.Create)
			projects.GET("", d.projectHandler.List)
			projects.GET("/:projectId", d.projectHandler.Get)
			projects.PATCH("/:projectId", d.projectHandler.Update)
			projects.DELETE("/:projectId", d.projectHandler.Delete)

			projects.POST("/:projectId/keys", d.apiKeyHandler.Create)
			projects.GET("/:projectId/keys", d.apiKeyHandler.List)
		}

		// Key routes (protected)
		keys := v1.Group("/keys")
		keys.Use(d.authMiddleware)
		{
			keys.GET("/:keyId", d.apiKeyHandler.Get)
			keys.PATCH("/:keyId", d.apiKeyHandler.Update)
			keys.DELETE("/:keyId", d.apiKeyHandler.Delete)
		}

		// Usage analytics routes (protected)
		usage := v1.Group("/usage")
		usage.Use(d.authMiddleware)
		{
			usage.GET("/stats/:projectId", d.usageHandler.ProjectStats)
			usage.GET("/analytics/:projectId", d.usageHandler.ProjectAnalytics)
			usage.GET("/keys/:keyId", d.usageHandler.KeyStats)
		}
	}
}

// registerServiceRoutes wires the key-authenticated service surface.
// Every route passes the strict key gate, then the capability gate for
// its service, and every completed request is recorded.
func registerServiceRoutes(r *gin.Engine, d serviceDeps) {
	v1 := r.Group("/v1")
	v1.Use(
		middleware.KeyAuth(d.apiKeyUsecase, middleware.VerificationStrict),
		middleware.UsageRecorder(d.usageUsecase),
	)
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.RequireCapabilities(entities.CapabilityAuth))
		{
			auth.POST("/verify", d.serviceHandler.VerifyToken)
			auth.GET("/users", d.serviceHandler.ListUsers)
		}

		database := v1.Group("/database")
		database.Use(middleware.RequireCapabilities(entities.CapabilityDatabase))
		{
			database.POST("/query", d.serviceHandler.Query)
			database.POST("/insert", d.serviceHandler.Insert)
		}

		storage := v1.Group("/storage")
		storage.Use(middleware.RequireCapabilities(entities.CapabilityStorage))
		{
			storage.GET("/files", d.serviceHandler.ListFiles)
			storage.POST("/upload", d.serviceHandler.UploadFile)
		}
	}
}
