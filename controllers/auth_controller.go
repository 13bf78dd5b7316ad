package controllers

import (
	"filehive/models"
	"filehive/services"
	"filehive/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{
		authService: services.NewAuthService(),
	}
}

// Signup handles account creation
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	resp, err := ac.authService.Register(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Registration failed")
		return
	}

	utils.CreatedResponse(c, "Registration successful", resp)
}

// Login handles user authentication
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	resp, err := ac.authService.Login(&req)
	if err != nil {
		utils.ServiceErrorResponse(c, err, "Login failed")
		return
	}

	utils.SuccessResponse(c, "Login successful", resp)
}

// Logout revokes the caller's session
func (ac *AuthController) Logout(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	if err := ac.authService.Logout(userID); err != nil {
		utils.ServiceErrorResponse(c, err, "Logout failed")
		return
	}

	utils.SuccessResponse(c, "Logged out successfully", nil)
}
