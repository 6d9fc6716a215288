package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/neurocare/neurocare-api/internal/application"
	"github.com/neurocare/neurocare-api/pkg/helpers"
	"github.com/neurocare/neurocare-api/pkg/response"
	"github.com/neurocare/neurocare-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AccountService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// Password strength and email shape are deliberately not validated here;
// any non-empty credentials are accepted at signup.
type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, application.ErrDuplicateAccount) {
			response.Error[any](c, http.StatusBadRequest, "email already registered", nil)
			return
		}
		helpers.LogError(h.Logger, "signup failed", err, logrus.Fields{"email": req.Email})
		response.Error[any](c, http.StatusInternalServerError, "error during signup", nil)
		return
	}
	// The stored record is never echoed back; in particular the digest
	// stays inside.
	response.Success[any](c, http.StatusOK, nil, "account created", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, exp, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Same status and body whether the email was unknown or the
		// password wrong.
		response.Error[any](c, http.StatusUnauthorized, "invalid email or password", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"token": token}, "login successful", map[string]any{"expires_at": exp})
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := helpers.ExtractBearerToken(c.GetHeader("Authorization"))
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "missing or invalid authorization header", nil)
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
		helpers.LogError(h.Logger, "logout failed", err, nil)
		response.Error[any](c, http.StatusInternalServerError, "error during logout", nil)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "successfully logged out", nil)
}

// CurrentUser GET /api/auth/current-user
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	token, ok := helpers.ExtractBearerToken(c.GetHeader("Authorization"))
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "missing or invalid authorization header", nil)
		return
	}
	view, err := h.Svc.CurrentUser(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrTokenRevoked):
			response.Error[any](c, http.StatusUnauthorized, "token is invalidated (logged out)", nil)
		case errors.Is(err, application.ErrInvalidToken):
			response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
		case errors.Is(err, application.ErrAccountNotFound):
			response.Error[any](c, http.StatusNotFound, "account not found", nil)
		default:
			helpers.LogError(h.Logger, "current-user failed", err, nil)
			response.Error[any](c, http.StatusInternalServerError, "unexpected error", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, view, "current user", nil)
}

// ListAll GET /api/auth/all (admin-gated)
func (h *AuthHandler) ListAll(c *gin.Context) {
	views, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		helpers.LogError(h.Logger, "list accounts failed", err, nil)
		response.Error[any](c, http.StatusInternalServerError, "unexpected error", nil)
		return
	}
	response.Success(c, http.StatusOK, views, "accounts", map[string]any{"count": len(views)})
}

// Search GET /api/auth/search?q=&size= (admin-gated)
func (h *AuthHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchAccounts(c.Request.Context(), q, size)
	if err != nil {
		helpers.LogError(h.Logger, "account search failed", err, logrus.Fields{"q": q})
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}
