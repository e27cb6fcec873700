package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS is a permissive allow-all CORS middleware for the chart-rendering
// frontend, which is served from a different origin.
//
// Behavior:
//   - Sets Access-Control-Allow-Origin/Methods/Headers on every response.
//   - Answers preflight OPTIONS requests with 204 No Content.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
