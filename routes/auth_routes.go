package routes

import (
	"filehive/controllers"
	"filehive/middleware"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.RouterGroup) {
	authController := controllers.NewAuthController()

	auth := r.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/signup", authController.Signup)
		auth.POST("/login", authController.Login)

		protected := auth.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/logout", authController.Logout)
		}
	}
}
