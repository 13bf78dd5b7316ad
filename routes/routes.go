package routes

import (
	"filehive/config"
	"filehive/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	middleware.SetRateLimitEnabled(cfg.RateLimitEnabled)

	// Global middleware
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.Recovery())

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware())
	{
		// Public routes
		AuthRoutes(v1)
		OTPRoutes(v1, cfg)

		// Protected routes
		FolderRoutes(v1)
		ImageRoutes(v1, cfg)
	}
}
