package routes

import (
	"filehive/controllers"
	"filehive/middleware"

	"github.com/gin-gonic/gin"
)

func FolderRoutes(r *gin.RouterGroup) {
	folderController := controllers.NewFolderController()

	folders := r.Group("/folders")
	folders.Use(middleware.AuthMiddleware())
	{
		folders.POST("", folderController.CreateFolder)
		folders.GET("", folderController.GetFolders)
		folders.GET("/tree", folderController.GetFolderTree)
		folders.GET("/:id", folderController.GetFolder)
		folders.GET("/:id/contents", folderController.GetFolderContents)
		folders.PUT("/:id", folderController.RenameFolder)
		folders.DELETE("/:id", folderController.DeleteFolder)
	}
}
