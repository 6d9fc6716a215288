package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/neurocare/neurocare-api/internal/application"
	"github.com/neurocare/neurocare-api/internal/domain/entity"
	"github.com/neurocare/neurocare-api/internal/interface/middleware"
	"github.com/neurocare/neurocare-api/pkg/helpers"
	"github.com/neurocare/neurocare-api/pkg/response"
	"github.com/neurocare/neurocare-api/pkg/validation"
)

const maxAvatarBytes = 5 << 20

type WellnessHandler struct {
	Svc    *application.WellnessService
	Logger *logrus.Logger
}

func NewWellnessHandler(svc *application.WellnessService, logger *logrus.Logger) *WellnessHandler {
	return &WellnessHandler{Svc: svc, Logger: logger}
}

type chatMessageRequest struct {
	Message string `json:"message" binding:"required,max=4000"`
}

type moodLogRequest struct {
	Mood string `json:"mood" binding:"required,oneof=happy calm okay sad anxious stressed"`
	Note string `json:"note" binding:"max=1000"`
}

type settingsRequest struct {
	AvatarURL          string `json:"avatar_url"`
	Timezone           string `json:"timezone"`
	DailyReminder      bool   `json:"daily_reminder"`
	ShareAnonymousData bool   `json:"share_anonymous_data"`
}

// PostChatMessage POST /api/chat/messages
func (h *WellnessHandler) PostChatMessage(c *gin.Context) {
	email := c.GetString(middleware.CtxEmailKey)
	var req chatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	m, err := h.Svc.AddChatMessage(c.Request.Context(), email, req.Message)
	if err != nil {
		h.fail(c, err, "store chat message failed")
		return
	}
	response.Success(c, http.StatusOK, m, "message recorded", nil)
}

// GetChatHistory GET /api/chat/messages
func (h *WellnessHandler) GetChatHistory(c *gin.Context) {
	email := c.GetString(middleware.CtxEmailKey)
	msgs, err := h.Svc.ChatHistory(c.Request.Context(), email)
	if err != nil {
		h.fail(c, err, "load chat history failed")
		return
	}
	response.Success(c, http.StatusOK, msgs, "chat history", map[string]any{"count": len(msgs)})
}

// PostMoodLog POST /api/mood-logs
func (h *WellnessHandler) PostMoodLog(c *gin.Context) {
	email := c.GetString(middleware.CtxEmailKey)
	var req moodLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.LogMood(c.Request.Context(), email, req.Mood, req.Note)
	if err != nil {
		h.fail(c, err, "store mood log failed")
		return
	}
	response.Success(c, http.StatusOK, l, "mood recorded", nil)
}

// GetMoodLogs GET /api/mood-logs
func (h *WellnessHandler) GetMoodLogs(c *gin.Context) {
	email := c.GetString(middleware.CtxEmailKey)
	logs, err := h.Svc.MoodLogs(c.Request.Context(), email)
	if err != nil {
		h.fail(c, err, "load mood logs failed")
		return
	}
	response.Success(c, http.StatusOK, logs, "mood logs", map[string]any{"count": len(logs)})
}

// UpdateSettings PUT /api/profile/settings
func (h *WellnessHandler) UpdateSettings(c *gin.Context) {
	email := c.GetString(middleware.CtxEmailKey)
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	settings := entity.Settings{
		AvatarURL:          req.AvatarURL,
		Timezone:           req.Timezone,
		DailyReminder:      req.DailyReminder,
		ShareAnonymousData: req.ShareAnonymousData,
	}
	if err := h.Svc.UpdateSettings(c.Request.Context(), email, settings); err != nil {
		h.fail(c, err, "update settings failed")
		return
	}
	response.Success(c, http.StatusOK, settings, "settings updated", nil)
}

// UploadAvatar POST /api/profile/avatar (multipart field "avatar")
func (h *WellnessHandler) UploadAvatar(c *gin.Context) {
	email := c.GetString(middleware.CtxEmailKey)
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing avatar file", nil)
		return
	}
	if fh.Size > maxAvatarBytes {
		response.Error[any](c, http.StatusBadRequest, "avatar too large", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "unreadable avatar file", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadAvatar(c.Request.Context(), email, f, fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		h.fail(c, err, "avatar upload failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"avatar_url": url}, "avatar updated", nil)
}

func (h *WellnessHandler) fail(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, application.ErrAccountNotFound) {
		response.Error[any](c, http.StatusNotFound, "account not found", nil)
		return
	}
	helpers.LogError(h.Logger, logMsg, err, logrus.Fields{"path": c.FullPath()})
	response.Error[any](c, http.StatusInternalServerError, "unexpected error", nil)
}
