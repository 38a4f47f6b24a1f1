package middleware

import (
	"net/http"
	"strings"

	"github.com/111AHMED/touskiebackend/auth"
	"github.com/111AHMED/touskiebackend/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware authenticates a request with an access credential taken
// from the Authorization header, falling back to the access_token cookie for
// the browser flow. On success the subject email is placed in the context.
func AuthMiddleware(codec *auth.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string
		header := c.GetHeader("Authorization")
		switch {
		case strings.HasPrefix(header, "Bearer "):
			tokenStr = strings.TrimPrefix(header, "Bearer ")
		default:
			tokenStr, _ = c.Cookie(utils.AccessCookieName)
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		claims, err := codec.DecodeAccess(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("email", claims.Subject)
		c.Next()
	}
}
