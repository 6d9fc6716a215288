package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	repo "github.com/neurocare/neurocare-api/internal/domain/repository"
	"github.com/neurocare/neurocare-api/pkg/helpers"
	"github.com/neurocare/neurocare-api/pkg/response"
)

const (
	// CtxEmailKey is where BearerAuth stores the authenticated account email.
	CtxEmailKey = "accountEmail"
	// CtxTokenKey holds the raw bearer token of the current request.
	CtxTokenKey = "sessionToken"
)

// BearerAuth validates the Authorization header, rejects revoked and invalid
// tokens, and injects the email claim into the Gin context. Ordering matters:
// the blacklist is consulted before the signature so a logged-out token is
// reported as revoked, not merely invalid.
func BearerAuth(bl repo.TokenBlacklist, tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := helpers.ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error[any](c, http.StatusBadRequest, "missing or invalid authorization header", nil)
			c.Abort()
			return
		}
		revoked, err := bl.IsRevoked(c.Request.Context(), token)
		if err != nil {
			response.Error[any](c, http.StatusInternalServerError, "unexpected error", nil)
			c.Abort()
			return
		}
		if revoked {
			response.Error[any](c, http.StatusUnauthorized, "token is invalidated (logged out)", nil)
			c.Abort()
			return
		}
		claims, err := tokens.Parse(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.Abort()
			return
		}
		c.Set(CtxEmailKey, claims.Email)
		c.Set(CtxTokenKey, token)
		c.Next()
	}
}
