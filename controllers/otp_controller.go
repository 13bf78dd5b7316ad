package controllers

import (
	"filehive/models"
	"filehive/services"
	"filehive/utils"

	"github.com/gin-gonic/gin"
)

type OTPController struct {
	otpService *services.OTPService
}

func NewOTPController(otpService *services.OTPService) *OTPController {
	return &OTPController{otpService: otpService}
}

// Send generates a verification code and emails it to the requester
func (oc *OTPController) Send(c *gin.Context) {
	var req models.OTPSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := oc.otpService.Send(&req); err != nil {
		utils.ServiceErrorResponse(c, err, "Failed to send OTP")
		return
	}

	utils.SuccessResponse(c, "OTP sent successfully", nil)
}

// Verify checks a submitted code and marks the account verified
func (oc *OTPController) Verify(c *gin.Context) {
	var req models.OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request data")
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, err)
		return
	}

	if err := oc.otpService.Verify(&req); err != nil {
		utils.ServiceErrorResponse(c, err, "OTP verification failed")
		return
	}

	utils.SuccessResponse(c, "Email verified successfully", nil)
}
