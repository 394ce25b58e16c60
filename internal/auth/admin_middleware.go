package auth

import (
	"net/http"

	"heartlink/backend/internal/models"
	"heartlink/backend/internal/store"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware creates a gin middleware to check for the admin role.
// It must be used AFTER the standard AuthMiddleware. The role is re-read
// from the database rather than trusted from the token, so revoking an
// admin takes effect before the token expires.
func AdminMiddleware(users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, exists := c.Get(ContextUsername)
		if !exists {
			// This should not happen if AuthMiddleware is used before it
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			return
		}

		role, err := users.RoleOf(c.Request.Context(), username.(string))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Authenticated user not found",
			})
			return
		}

		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Admin access required",
			})
			return
		}

		c.Next()
	}
}
