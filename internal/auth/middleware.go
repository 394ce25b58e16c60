package auth

import (
	"net/http"
	"strings"

	"heartlink/backend/internal/config"
	"heartlink/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// Context keys set by the middlewares below.
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// AuthMiddleware creates a gin middleware that requires a valid bearer token.
// On success it stores the token's username and role in the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authentication token is required",
			})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header must be of the form 'Bearer <token>'",
			})
			return
		}

		claims, err := jwt.ParseToken(parts[1], cfg.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}
