package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spingate-backend/internal/services"
)

// AuthMiddleware validates the session credential on REST routes, from the
// Authorization header or the token query parameter, and injects the bound
// identity into the request context.
func AuthMiddleware(jwtService *services.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
				c.Abort()
				return
			}
			tokenString = parts[1]
		} else {
			tokenString = c.Query("token")
			if tokenString == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
				c.Abort()
				return
			}
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired credential"})
			c.Abort()
			return
		}

		c.Set("session_id", claims.SessionID)
		c.Set("partner_id", claims.PartnerID)
		c.Set("player_id", claims.PlayerID)
		c.Set("game_code", claims.GameCode)

		c.Next()
	}
}
