package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neurocare/neurocare-api/pkg/response"
)

// AdminKey gates administrative endpoints behind an X-Admin-Key header.
// With no key configured the endpoints are disabled outright rather than
// left open.
func AdminKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			response.Error[any](c, http.StatusForbidden, "admin endpoints disabled", nil)
			c.Abort()
			return
		}
		got := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			response.Error[any](c, http.StatusForbidden, "forbidden", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
