package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Baaaki/screenshelf/internal/models"
	"github.com/Baaaki/screenshelf/internal/utils"
	"github.com/Baaaki/screenshelf/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ClaimsKey is the gin context key holding the verified *utils.Claims.
const ClaimsKey = "claims"

// AuthMiddleware verifies the bearer token. A missing token is 401, an
// invalid or expired one is 403.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		authHeader := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"err": "No token provided",
			})
			return
		}

		// 2. Validate token
		claims, err := utils.ValidateToken(tokenString, jwtSecret)
		if err != nil {
			logger.Log.Debug("Rejected bearer token",
				zap.String("path", c.FullPath()),
				zap.Bool("expired", errors.Is(err, utils.ErrExpiredToken)),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"err": "Invalid token",
			})
			return
		}

		// 3. Add claims to context (handlers can access)
		c.Set("user_id", claims.UserID)
		c.Set("user_role", claims.Role)
		c.Set(ClaimsKey, claims)

		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"err": "No token provided",
			})
			return
		}

		if err := utils.RequireRole(claims, models.RoleAdmin); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"err": "Access denied. Admins only.",
			})
			return
		}

		c.Next()
	}
}

// GetClaims returns the identity stored by AuthMiddleware.
func GetClaims(c *gin.Context) (*utils.Claims, bool) {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*utils.Claims)
	return claims, ok && claims != nil
}
