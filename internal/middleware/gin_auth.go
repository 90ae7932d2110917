package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinRequireAuth adapts the net/http AuthMiddleware to Gin so the
// session check stays framework-agnostic.
func GinRequireAuth(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The inner handler re-attaches the (possibly enriched)
		// request before resuming the Gin chain.
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		auth.RequireAuth(next).ServeHTTP(c.Writer, c.Request)

		// A written response means the middleware rejected the
		// request; Gin must not run the route handler.
		if c.Writer.Written() {
			c.Abort()
		}
	}
}
