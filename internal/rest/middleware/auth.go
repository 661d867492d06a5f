package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wildpine/wildpine/internal/config"
	"github.com/wildpine/wildpine/internal/logger"
	"github.com/wildpine/wildpine/internal/service"
	"github.com/wildpine/wildpine/internal/types"
)

// AuthenticateMiddleware authenticates requests based on either:
// 1. API key in the configured header (server-to-server calls)
// 2. JWT token in the Authorization header as a Bearer token
// It sets the user ID and email in the request context for downstream handlers
func AuthenticateMiddleware(cfg *config.Configuration, authService service.AuthService, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// First check for API key
		if cfg.Auth.APIKey != "" {
			apiKeyHeader := c.GetHeader(cfg.Auth.APIKeyHeader)
			if apiKeyHeader != "" {
				if subtle.ConstantTimeCompare([]byte(apiKeyHeader), []byte(cfg.Auth.APIKey)) != 1 {
					logger.Debugw("invalid api key")
					c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
					c.Abort()
					return
				}

				ctx := types.SetUserID(c.Request.Context(), types.DefaultUserID)
				c.Request = c.Request.WithContext(ctx)
				c.Next()
				return
			}
		}

		// If no API key, check for JWT token
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Errorw("failed to validate token", "error", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if claims == nil || claims.UserID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		ctx := types.SetUserID(c.Request.Context(), claims.UserID)
		ctx = types.SetUserEmail(ctx, claims.Email)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CronAuthMiddleware guards scheduler-only routes with a shared secret header
func CronAuthMiddleware(cfg *config.Configuration, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := c.GetHeader(types.HeaderCronSecret)
		if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.Cron.Secret)) != 1 {
			logger.Debugw("rejected cron request", "path", c.Request.URL.Path)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		ctx := types.SetUserID(c.Request.Context(), types.DefaultUserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
