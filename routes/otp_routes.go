package routes

import (
	"filehive/config"
	"filehive/controllers"
	"filehive/middleware"
	"filehive/services"

	"github.com/gin-gonic/gin"
)

func OTPRoutes(r *gin.RouterGroup, cfg *config.Config) {
	mailer := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	otpController := controllers.NewOTPController(services.NewOTPService(mailer, cfg.OTPTTL))

	otp := r.Group("/otp")
	otp.Use(middleware.OTPRateLimitMiddleware())
	{
		otp.POST("/send", otpController.Send)
		otp.POST("/verify", otpController.Verify)
	}
}
