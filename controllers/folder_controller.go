package controllers

import (
	"filehive/models"
	"filehive/services"
	"filehive/utils"

	"github.com/gin-gonic/gin"
)

type FolderController struct {
	folderService *services.FolderService
}

func NewFolderController() *FolderController {
	return &FolderController{
		folderService: services.NewFolderService(),
	}
}

// CreateFolder creates a folder, optionally under a parent
func (fc *FolderController) CreateFolder(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req models.FolderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	folder, err := fc.folderService.CreateFolder(userID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to create folder")
		return
	}

	utils.CreatedResponse(c, "Folder created successfully", folder)
}

// GetFolders returns all of the caller's folders as a flat list
func (fc *FolderController) GetFolders(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	folders, err := fc.folderService.ListFolders(userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to get folders")
		return
	}

	utils.SuccessResponse(c, "Folders retrieved successfully", folders)
}

// GetFolderTree returns the caller's folders as a nested hierarchy
func (fc *FolderController) GetFolderTree(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	tree, err := fc.folderService.GetTree(userID)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to get folder tree")
		return
	}

	utils.SuccessResponse(c, "Folder tree retrieved successfully", tree)
}

// GetFolder returns a single folder
func (fc *FolderController) GetFolder(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	folder, err := fc.folderService.GetFolder(userID, folderID)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to get folder")
		return
	}

	utils.SuccessResponse(c, "Folder retrieved successfully", folder)
}

// GetFolderContents returns a folder with its direct subfolders and images
func (fc *FolderController) GetFolderContents(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	contents, err := fc.folderService.GetContents(userID, folderID)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to get folder contents")
		return
	}

	utils.SuccessResponse(c, "Folder contents retrieved successfully", contents)
}

// RenameFolder renames a folder in place
func (fc *FolderController) RenameFolder(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	var req models.FolderRenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	folder, err := fc.folderService.RenameFolder(userID, folderID, &req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to rename folder")
		return
	}

	utils.SuccessResponse(c, "Folder renamed successfully", folder)
}

// DeleteFolder removes a folder and everything beneath it
func (fc *FolderController) DeleteFolder(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	folderID, err := utils.StringToObjectID(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid folder ID")
		return
	}

	deleted, err := fc.folderService.DeleteFolder(userID, folderID)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to delete folder")
		return
	}

	utils.SuccessResponse(c, "Folder deleted successfully", gin.H{
		"deleted_folders": deleted,
	})
}
