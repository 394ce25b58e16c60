package auth

import (
	"strings"

	"heartlink/backend/internal/config"
	"heartlink/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// OptionalAuthMiddleware inspects for a token and sets the username if present
// and valid, but does not fail if the token is missing or invalid. Used on
// routes that serve both anonymous and logged-in viewers.
func OptionalAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := jwt.ParseToken(parts[1], cfg.JWTSecret); err == nil {
					c.Set(ContextUsername, claims.Username)
					c.Set(ContextRole, claims.Role)
				}
			}
		}
		c.Next()
	}
}
