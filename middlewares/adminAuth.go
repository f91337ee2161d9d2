package middlewares

import (
	"BayHospital/utils"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// contextKey is a custom context key type for request-scoped admin details.
type contextKey string

const adminUsernameKey contextKey = "adminUsername"

// AdminAuthMiddleware validates the Authorization bearer token as an admin
// PASETO token. The booking core itself never checks roles; this is the
// external gate in front of the schedule-mutation surface.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED"})
			c.Abort()
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED"})
			c.Abort()
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(token, utils.RoleAdmin)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "UNAUTHORIZED"})
			c.Abort()
			return
		}

		ctx := context.WithValue(c.Request.Context(), adminUsernameKey, claims.Username)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// ExtractAdminFromContext retrieves the authenticated admin username.
func ExtractAdminFromContext(ctx context.Context) (string, error) {
	username, ok := ctx.Value(adminUsernameKey).(string)
	if !ok {
		return "", errors.New("admin username not found in context")
	}
	return username, nil
}
