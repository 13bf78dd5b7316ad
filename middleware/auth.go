package middleware

import (
	"strings"

	"filehive/services"
	"filehive/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates JWT tokens and requires a live Redis session.
// A valid signature is not enough on its own: the token must also match the
// one stored at login, so logout and session expiry revoke access.
func AuthMiddleware() gin.HandlerFunc {
	sessions := services.NewSessionService(utils.TokenTTL())

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authorization header required")
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		token := tokenParts[1]
		claims, err := utils.ValidateToken(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		stored, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			utils.InternalServerErrorResponse(c, "Failed to verify session")
			c.Abort()
			return
		}
		if stored == "" || stored != token {
			utils.UnauthorizedResponse(c, "Session expired, please log in again")
			c.Abort()
			return
		}

		utils.SetUserIDInContext(c, claims.UserID)
		c.Set("token_claims", claims)

		c.Next()
	}
}
