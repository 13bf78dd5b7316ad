package routes

import (
	"filehive/config"
	"filehive/controllers"
	"filehive/middleware"
	"filehive/services"

	"github.com/gin-gonic/gin"
)

func ImageRoutes(r *gin.RouterGroup, cfg *config.Config) {
	imageController := controllers.NewImageController(services.NewImageService(cfg.MaxUploadSize))

	images := r.Group("/images")
	images.Use(middleware.AuthMiddleware())
	{
		images.POST("/upload", middleware.UploadRateLimitMiddleware(), imageController.UploadImage)
		images.GET("", imageController.GetImages)
		images.GET("/search", middleware.RateLimitWithType("search"), imageController.SearchImages)
		images.GET("/:id", imageController.GetImage)
		images.DELETE("/:id", imageController.DeleteImage)
	}
}
