package controllers

import (
	"strconv"

	"filehive/services"
	"filehive/utils"

	"github.com/gin-gonic/gin"
)

type ImageController struct {
	imageService *services.ImageService
}

func NewImageController(imageService *services.ImageService) *ImageController {
	return &ImageController{imageService: imageService}
}

// UploadImage stores an uploaded image in a folder
func (ic *ImageController) UploadImage(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	folderID := c.PostForm("folder_id")
	if folderID == "" {
		utils.BadRequestResponse(c, "folder_id is required")
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required")
		return
	}

	image, err := ic.imageService.UploadImage(userID, c.PostForm("name"), folderID, header)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to upload image")
		return
	}

	utils.CreatedResponse(c, "Image uploaded successfully", image)
}

// GetImages returns the caller's images, optionally filtered by folder
func (ic *ImageController) GetImages(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	images, total, err := ic.imageService.ListImages(userID, c.Query("folder_id"), page, limit)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to get images")
		return
	}

	utils.PaginatedResponse(c, "Images retrieved successfully", images, page, limit, int(total))
}

// SearchImages matches image names case-insensitively
func (ic *ImageController) SearchImages(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	images, err := ic.imageService.SearchImages(userID, c.Query("query"))
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Search failed")
		return
	}

	utils.SuccessResponse(c, "Search results retrieved successfully", images)
}

// GetImage returns a single image record
func (ic *ImageController) GetImage(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	imageID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid image ID")
		return
	}

	image, err := ic.imageService.GetImage(userID, imageID)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to get image")
		return
	}

	utils.SuccessResponse(c, "Image retrieved successfully", image)
}

// DeleteImage removes an image record and its stored blob
func (ic *ImageController) DeleteImage(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	imageID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid image ID")
		return
	}

	if err := ic.imageService.DeleteImage(userID, imageID); err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to delete image")
		return
	}

	utils.SuccessResponse(c, "Image deleted successfully", nil)
}
