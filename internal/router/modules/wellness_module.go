package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/neurocare/neurocare-api/internal/container"
	handlers "github.com/neurocare/neurocare-api/internal/interface/http"
	"github.com/neurocare/neurocare-api/internal/interface/middleware"
)

// WellnessModule wires the authenticated chat, mood and profile routes.
type WellnessModule struct {
	Handler *handlers.WellnessHandler
}

func NewWellnessModule(h *handlers.WellnessHandler) *WellnessModule {
	return &WellnessModule{Handler: h}
}

func (m *WellnessModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(container.GetBlacklist(), container.GetTokens()))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByEmail(), nil),
	)
	{
		auth.POST("/chat/messages", m.Handler.PostChatMessage)
		auth.GET("/chat/messages", m.Handler.GetChatHistory)
		auth.POST("/mood-logs", m.Handler.PostMoodLog)
		auth.GET("/mood-logs", m.Handler.GetMoodLogs)
		auth.PUT("/profile/settings", m.Handler.UpdateSettings)
		auth.POST("/profile/avatar", m.Handler.UploadAvatar)
	}
}
