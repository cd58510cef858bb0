package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blogpress-backend/internal/shared/middleware"
	"blogpress-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(v1, c)
		setupBlogRoutes(v1, c)
		setupCommentRoutes(v1, c)
		setupTagRoutes(v1, c)
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
		auth.POST("/logout", middleware.AuthMiddleware(c.Config.JWT.Secret), c.UserHandler.Logout)
		auth.POST("/refresh", c.UserHandler.RefreshToken)
		auth.POST("/verify-email", c.UserHandler.VerifyEmail)
		auth.POST("/resend-otp", c.UserHandler.ResendOTP)
		auth.POST("/forgot-password", c.UserHandler.ForgotPassword)
		auth.POST("/reset-password", c.UserHandler.ResetPassword)
	}
}

// ========================================
// BLOG ROUTES
// ========================================
func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.AuthMiddleware(c.Config.JWT.Secret)

	blogs := v1.Group("/blogs")
	{
		// Public reads
		blogs.GET("", c.BlogHandler.GetAll)
		blogs.GET("/user/:userId", c.BlogHandler.GetByUser)
		blogs.GET("/:blogId", c.BlogHandler.GetByID)

		// Authenticated
		blogs.GET("/my-blogs", authRequired, c.BlogHandler.GetMine)
		blogs.POST("", authRequired, c.BlogHandler.Create)
		blogs.PATCH("/:blogId", authRequired, c.BlogHandler.Update)
		blogs.DELETE("/:blogId", authRequired, c.BlogHandler.Delete)
	}
}

// ========================================
// COMMENT ROUTES
// ========================================
func setupCommentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.AuthMiddleware(c.Config.JWT.Secret)

	comments := v1.Group("/comments")
	{
		comments.GET("/:blogId", c.CommentHandler.GetByBlog)
		comments.POST("/:blogId", authRequired, c.CommentHandler.Add)
		comments.PATCH("/:commentId", authRequired, c.CommentHandler.Edit)
		comments.DELETE("/:commentId", authRequired, c.CommentHandler.Delete)
	}
}

// ========================================
// TAG ROUTES
// ========================================
func setupTagRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authRequired := middleware.AuthMiddleware(c.Config.JWT.Secret)
	adminOnly := middleware.AdminMiddleware()

	tags := v1.Group("/tags")
	{
		tags.POST("", authRequired, c.TagHandler.Create)

		// Moderation - admin only
		tags.PATCH("/:tagId", authRequired, adminOnly, c.TagHandler.Approve)
		tags.DELETE("/:tagId", authRequired, adminOnly, c.TagHandler.Delete)
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
			"services":  gin.H{},
		}

		// Check database
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

		// Check redis - degraded nhưng vẫn serve được (cache fall open)
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
