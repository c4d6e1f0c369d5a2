package middleware

import (
	"net/http"
	"strings"

	userRepo "barberbook/database/repository/user"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuth validates the Bearer token, loads the account behind it and
// stores "userID" and "role" in the request context. The role carried by
// the token is cross-checked against the stored user record so a stale
// token cannot outlive a role change.
func JWTAuth(users userRepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		userID, tokenRole, err := utils.ExtractIdentityFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		usr, err := users.GetByID(c.Request.Context(), userID)
		if err != nil || usr == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication error",
			})
			return
		}
		if tokenRole != "" && tokenRole != usr.Role {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Token mismatch",
			})
			return
		}

		c.Set("userID", usr.ID)
		c.Set("role", usr.Role)
		c.Next()
	}
}
