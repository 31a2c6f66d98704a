package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/promotora-credito/app-cadastro/internal/config"
	"github.com/promotora-credito/app-cadastro/internal/models"
	"github.com/promotora-credito/app-cadastro/internal/observability"
	"go.uber.org/zap"
)

// Context keys set by AuthMiddleware
const (
	ClaimsKey = "claims"
	TokenKey  = "token"
	UserIDKey = "user_id"
)

// AuthMiddleware extracts the operator claims from the bearer token.
// The token is verified by the gateway and forwarded unchanged to the backend.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := extractClaims(token)
		if err != nil {
			observability.Logger().Warn("failed to extract claims from token", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(TokenKey, token)
		c.Set(UserIDKey, claims.Subject)
		c.Next()
	}
}

func extractClaims(token string) (*models.JWTClaims, error) {
	var claims models.JWTClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("failed to parse claims: %w", err)
	}
	return &claims, nil
}

// ClaimsFrom returns the claims stored by AuthMiddleware
func ClaimsFrom(c *gin.Context) (*models.JWTClaims, error) {
	v, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, fmt.Errorf("claims not found")
	}
	claims, ok := v.(*models.JWTClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type")
	}
	return claims, nil
}

// BearerToken returns the raw token stored by AuthMiddleware
func BearerToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}

// RequireAdmin allows only operators holding the configured admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ClaimsFrom(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		if !claims.HasRole(config.AppConfig.AdminRole) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
			c.Abort()
			return
		}

		c.Next()
	}
}
