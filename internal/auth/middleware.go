package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type contextKey string

const adminContextKey contextKey = "menucmsAdmin"

// Middleware validates bearer tokens and injects the authenticated admin identity.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "missing authorization header"})
			return
		}

		token := extractBearerToken(authHeader)
		if token == "" {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid authorization header"})
			return
		}

		claims, err := service.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(string(adminContextKey), claims.Email)
		c.Next()
	}
}

// CurrentAdmin extracts the authenticated admin email from the context.
func CurrentAdmin(c *gin.Context) (string, bool) {
	value, exists := c.Get(string(adminContextKey))
	if !exists {
		return "", false
	}
	email, ok := value.(string)
	return email, ok
}

func extractBearerToken(header string) string {
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
