package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lukenewport-prog/nptgpt/services"
)

// Auth gates a route behind the login token, accepted either as the "token"
// cookie or an Authorization bearer header. An unauthenticated request for
// the chat page is redirected to the login page; API requests get a 401.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("token")
		if token == "" {
			if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
				token = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if token == "" {
			reject(c, "Authentication required")
			return
		}

		username, ok := auth.VerifyToken(token)
		if !ok {
			reject(c, "Invalid or expired token")
			return
		}

		c.Set("username", username)
		c.Next()
	}
}

func reject(c *gin.Context, message string) {
	if c.Request.URL.Path == "/" {
		c.Redirect(http.StatusFound, "/login.html")
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
