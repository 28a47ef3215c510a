package main

import (
	"context"
	"net/http"
	"time"

	"newsapi-backend/internal/shared/middleware"
	"newsapi-backend/internal/shared/response"
	"newsapi-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.OptionalAuth(c.JWTManager),
	)

	router.GET("/health", healthCheckHandler(c))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupMeRoutes(v1, c)
		setupNewsRoutes(v1, c)
		setupCategoryRoutes(v1, c)
		setupPublisherRoutes(v1, c)
	}

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.PublisherHandler.Register)
		auth.POST("/login", c.PublisherHandler.Login)
	}
}

// ========================================
// CALLER ROUTES (identity required)
// ========================================
func setupMeRoutes(v1 *gin.RouterGroup, c *container.Container) {
	me := v1.Group("/me")
	{
		me.GET("", c.PublisherHandler.Me)
		me.PUT("/webhook", c.PublisherHandler.UpdateWebhook)
		me.GET("/news", c.NewsHandler.ListMine)
	}
}

// ========================================
// NEWS ROUTES
// ========================================
func setupNewsRoutes(v1 *gin.RouterGroup, c *container.Container) {
	newsGroup := v1.Group("/news")
	{
		// Public
		newsGroup.GET("", c.NewsHandler.List)
		newsGroup.GET("/slug/:slug", c.NewsHandler.GetBySlug)
		newsGroup.GET("/:id", c.NewsHandler.GetByID)

		// Owner only; checked in the service
		newsGroup.POST("", c.NewsHandler.Create)
		newsGroup.PUT("/:id", c.NewsHandler.Update)
		newsGroup.DELETE("/:id", c.NewsHandler.Delete)
	}
}

func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/categories", c.CategoryHandler.List)
}

func setupPublisherRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/publishers", c.PublisherHandler.List)
}

// ========================================
// HEALTH
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		checks := appCtx.HealthChecks(ctx)

		status := "ok"
		if db := checks["database"]; db != "ok" && db != "memory" {
			status = "degraded"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"checks":    checks,
		})
	}
}
