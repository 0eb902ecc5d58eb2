package middleware

import (
	"net/http"
	"strings"

	"catalog-service/services"

	"github.com/gin-gonic/gin"
)

const (
	UserIDContextKey    = "userID"
	UserEmailContextKey = "userEmail"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity in the request context.
func AuthMiddleware(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == header {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header"})
			c.Abort()
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set(UserIDContextKey, sub)
		}
		if email, ok := claims["email"].(string); ok {
			c.Set(UserEmailContextKey, email)
		}
		c.Next()
	}
}
