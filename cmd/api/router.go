package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookcircle-backend/internal/shared/middleware"
	"bookcircle-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupUserRoutes(v1, c)
		setupFollowRoutes(v1, c)
		setupActivityRoutes(v1, c)
		setupBookRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/register", c.UserHandler.Register)
		auth.POST("/login", c.UserHandler.Login)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(v1 *gin.RouterGroup, c *container.Container) {
	jwtSecret := c.Config.JWT.Secret

	me := v1.Group("/users/me")
	me.Use(middleware.AuthMiddleware(jwtSecret))
	{
		me.GET("", c.UserHandler.GetMe)
		me.PUT("", c.UserHandler.UpdateMe)
		me.GET("/dashboard", c.UserHandler.GetDashboardStats)
	}

	// Public profile and social lists enrich their response when the
	// viewer is signed in.
	users := v1.Group("/users")
	users.Use(middleware.OptionalAuthMiddleware(jwtSecret))
	{
		users.GET("/:userId", c.UserHandler.GetProfile)
		users.GET("/:userId/followers", c.FollowHandler.ListFollowers)
		users.GET("/:userId/following", c.FollowHandler.ListFollowing)
	}
}

// ========================================
// FOLLOW ROUTES
// ========================================
func setupFollowRoutes(v1 *gin.RouterGroup, c *container.Container) {
	jwtSecret := c.Config.JWT.Secret

	v1.POST("/follow/:userId", middleware.AuthMiddleware(jwtSecret), c.FollowHandler.Follow)
	v1.DELETE("/unfollow/:userId", middleware.AuthMiddleware(jwtSecret), c.FollowHandler.Unfollow)

	follow := v1.Group("/follow")
	follow.Use(middleware.AuthMiddleware(jwtSecret))
	{
		follow.GET("/status/:userId", c.FollowHandler.GetStatus)
		follow.GET("/requests/pending", c.FollowHandler.ListPendingRequests)
		follow.POST("/requests/:followId/accept", c.FollowHandler.AcceptRequest)
		follow.POST("/requests/:followId/decline", c.FollowHandler.DeclineRequest)
	}
}

// ========================================
// ACTIVITY ROUTES
// ========================================
func setupActivityRoutes(v1 *gin.RouterGroup, c *container.Container) {
	jwtSecret := c.Config.JWT.Secret

	activities := v1.Group("/activities")
	{
		activities.GET("/public", middleware.OptionalAuthMiddleware(jwtSecret), c.ActivityHandler.GetPublicFeed)

		authed := activities.Group("")
		authed.Use(middleware.AuthMiddleware(jwtSecret))
		{
			authed.GET("/feed", c.ActivityHandler.GetFeed)
			authed.POST("/:id/like", c.ActivityHandler.ToggleLike)
			authed.POST("/:id/comments", c.ActivityHandler.AddComment)
			authed.DELETE("/:id/comments/:commentId", c.ActivityHandler.DeleteComment)
		}
	}
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(v1 *gin.RouterGroup, c *container.Container) {
	books := v1.Group("/books")
	books.Use(middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		books.POST("", c.BookHandler.CreateBook)
		books.POST("/:id/reviews", c.BookHandler.CreateReview)
		books.POST("/:id/like", c.BookHandler.LikeBook)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}
