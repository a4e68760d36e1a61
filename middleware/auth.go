package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"art-gallery-service/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	UserContextKey     = "userID"
	UsernameContextKey = "username"
	RoleContextKey     = "role"
)

// ParseToken validates an HMAC-signed JWT and returns its claims. When
// expectedType is non-empty the "typ" claim must match it.
func ParseToken(secret []byte, tokenStr, expectedType string) (jwt.MapClaims, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if expectedType != "" {
		if typ, ok := claims["typ"].(string); !ok || typ != expectedType {
			return nil, fmt.Errorf("invalid token type")
		}
	}
	return claims, nil
}

// AuthMiddleware authenticates the bearer token and stores the caller's
// identity and role on the request context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := ParseToken(secret, tokenStr, "access")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		userID, _ := claims["user_id"].(string)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(UserContextKey, userID)
		if username, ok := claims["username"].(string); ok {
			c.Set(UsernameContextKey, username)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(RoleContextKey, role)
		}
		c.Next()
	}
}

// OptionalAuth attaches identity and role when a valid bearer token is
// present, but never rejects the request. Used on the public catalog reads so
// staff callers still see unavailable pictures.
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		claims, err := ParseToken(secret, tokenStr, "access")
		if err != nil {
			c.Next()
			return
		}

		if userID, ok := claims["user_id"].(string); ok && userID != "" {
			c.Set(UserContextKey, userID)
		}
		if username, ok := claims["username"].(string); ok {
			c.Set(UsernameContextKey, username)
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(RoleContextKey, role)
		}
		c.Next()
	}
}

// RequireStaff rejects callers without the admin role. Must run after
// AuthMiddleware.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsStaff(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// IsStaff is the single role check used by every endpoint; controllers never
// inspect claims directly.
func IsStaff(c *gin.Context) bool {
	role, ok := c.Get(RoleContextKey)
	if !ok {
		return false
	}
	roleStr, ok := role.(string)
	return ok && roleStr == models.RoleAdmin
}

// GetUserID returns the authenticated caller's id.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	val, ok := c.Get(UserContextKey)
	if !ok {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	idStr, ok := val.(string)
	if !ok || idStr == "" {
		return uuid.Nil, errors.New("user ID not found in context")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user ID in context: %w", err)
	}
	return id, nil
}
