package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurocare/neurocare-api/internal/infrastructure/memory"
	"github.com/neurocare/neurocare-api/pkg/helpers"
)

func newBearerAuthRouter(t *testing.T) (*gin.Engine, *helpers.TokenManager, *memory.Blacklist) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	tokens := &helpers.TokenManager{Secret: []byte("mw-test-secret"), TTL: time.Hour}
	bl := memory.NewBlacklist()
	t.Cleanup(bl.Close)

	r := gin.New()
	r.GET("/whoami", BearerAuth(bl, tokens), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(CtxEmailKey))
	})
	return r, tokens, bl
}

func TestBearerAuth_ValidToken(t *testing.T) {
	r, tokens, _ := newBearerAuthRouter(t)

	tok, _, err := tokens.Generate("u@x.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u@x.com", w.Body.String())
}

func TestBearerAuth_HeaderShapes(t *testing.T) {
	r, tokens, bl := newBearerAuthRouter(t)

	valid, _, err := tokens.Generate("u@x.com")
	require.NoError(t, err)
	revoked, _, err := tokens.Generate("gone@x.com")
	require.NoError(t, err)
	require.NoError(t, bl.Revoke(context.Background(), revoked, time.Hour))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusBadRequest},
		{"wrong scheme", "Token " + valid, http.StatusBadRequest},
		{"bare scheme", "Bearer", http.StatusBadRequest},
		{"empty token", "Bearer ", http.StatusBadRequest},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
		{"revoked token", "Bearer " + revoked, http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestBearerAuth_RevokedBeatsInvalid(t *testing.T) {
	r, _, bl := newBearerAuthRouter(t)

	// a revoked token is reported as revoked even if it would not parse
	require.NoError(t, bl.Revoke(context.Background(), "never-issued", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer never-issued")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token is invalidated (logged out)")
}

func TestAdminKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(key string) *gin.Engine {
		r := gin.New()
		r.GET("/admin", AdminKey(key), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	do := func(r *gin.Engine, header string) int {
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if header != "" {
			req.Header.Set("X-Admin-Key", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	withKey := newRouter("s3cret")
	assert.Equal(t, http.StatusOK, do(withKey, "s3cret"))
	assert.Equal(t, http.StatusForbidden, do(withKey, "wrong"))
	assert.Equal(t, http.StatusForbidden, do(withKey, ""))

	// no configured key disables the group entirely
	disabled := newRouter("")
	assert.Equal(t, http.StatusForbidden, do(disabled, "s3cret"))
}
