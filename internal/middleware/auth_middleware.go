package middleware

import (
	"net/http"
	"strings"

	"merchandising_backend/internal/models"
	"merchandising_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// actorKey is the gin context key under which the authenticated actor is stored.
const actorKey = "actor"

// AuthMiddleware creates a Gin middleware for JWT authentication. On success
// it stores a models.Actor in the context; handlers pass that actor
// explicitly into every service operation.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(actorKey, models.Actor{
			UserID:   claims.UserID,
			Email:    claims.Email,
			Role:     claims.Role,
			ClientID: claims.ClientID,
		})

		c.Next()
	}
}

// GetActor retrieves the authenticated actor set by AuthMiddleware.
func GetActor(c *gin.Context) (models.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}

// RoleAuthMiddleware creates a Gin middleware for role-based authorization.
// It checks if the actor's role is one of the allowed roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Actor not found in context. Ensure AuthMiddleware runs first."})
			c.Abort()
			return
		}

		allowed := false
		for _, r := range allowedRoles {
			if strings.EqualFold(actor.Role, r) {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource. Required roles: " + strings.Join(allowedRoles, ", ")})
			c.Abort()
			return
		}

		c.Next()
	}
}
