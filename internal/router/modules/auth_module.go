package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/neurocare/neurocare-api/internal/container"
	handlers "github.com/neurocare/neurocare-api/internal/interface/http"
	"github.com/neurocare/neurocare-api/internal/interface/middleware"
)

// AuthModule wires the account endpoints under /api/auth.
// Public: signup, login. Token-bearing: logout, current-user (the handlers
// validate the Authorization header themselves so a malformed header is a
// 400 and a logout can still revoke an invalid token). Admin: all, search.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	auth := rg.Group("/auth")
	auth.POST("/signup", signupLimiter, m.Handler.Signup)
	auth.POST("/login", loginLimiter, m.Handler.Login)
	auth.POST("/logout", m.Handler.Logout)
	auth.GET("/current-user", m.Handler.CurrentUser)

	admin := auth.Group("/")
	admin.Use(middleware.AdminKey(container.GetConfig().AdminAPIKey))
	{
		admin.GET("/all", m.Handler.ListAll)
		admin.GET("/search", m.Handler.Search)
	}
}
