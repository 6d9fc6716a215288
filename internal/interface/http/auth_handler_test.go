package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurocare/neurocare-api/internal/application"
	"github.com/neurocare/neurocare-api/internal/domain/entity"
	repo "github.com/neurocare/neurocare-api/internal/domain/repository"
	"github.com/neurocare/neurocare-api/internal/infrastructure/memory"
	"github.com/neurocare/neurocare-api/pkg/helpers"
)

// mapAccountRepo backs the handler tests without a database.
type mapAccountRepo struct {
	accounts map[string]*entity.Account
}

func newMapAccountRepo() *mapAccountRepo {
	return &mapAccountRepo{accounts: make(map[string]*entity.Account)}
}

func (r *mapAccountRepo) Create(_ context.Context, a *entity.Account) error {
	if _, ok := r.accounts[a.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	a.ID = fmt.Sprintf("acct-%d", len(r.accounts)+1)
	a.CreatedAt = time.Now().UTC()
	r.accounts[a.Email] = a
	return nil
}

func (r *mapAccountRepo) GetByEmail(_ context.Context, email string) (*entity.Account, error) {
	a, ok := r.accounts[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return a, nil
}

func (r *mapAccountRepo) GetAll(_ context.Context) ([]entity.Account, error) {
	out := make([]entity.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	return out, nil
}

func (r *mapAccountRepo) UpdateSettings(_ context.Context, email string, s entity.Settings) error {
	a, ok := r.accounts[email]
	if !ok {
		return repo.ErrNotFound
	}
	a.Settings = s
	return nil
}

func (r *mapAccountRepo) AppendChatMessage(_ context.Context, email string, m entity.ChatMessage) error {
	a, ok := r.accounts[email]
	if !ok {
		return repo.ErrNotFound
	}
	a.ChatHistory = append(a.ChatHistory, m)
	return nil
}

func (r *mapAccountRepo) AppendMoodLog(_ context.Context, email string, l entity.MoodLog) error {
	a, ok := r.accounts[email]
	if !ok {
		return repo.ErrNotFound
	}
	a.MoodLogs = append(a.MoodLogs, l)
	return nil
}

type authTestEnv struct {
	router *gin.Engine
	repo   *mapAccountRepo
}

func newAuthTestEnv(t *testing.T) *authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMapAccountRepo()
	tokens := &helpers.TokenManager{Secret: []byte("handler-test-secret"), TTL: time.Hour}
	bl := memory.NewBlacklist()
	t.Cleanup(bl.Close)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := application.NewAccountService(store, tokens, bl, logger, nil, false, nil, "")
	h := NewAuthHandler(svc, logger)

	r := gin.New()
	auth := r.Group("/api/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/current-user", h.CurrentUser)

	return &authTestEnv{router: r, repo: store}
}

func (e *authTestEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuthHandler_FullSession(t *testing.T) {
	env := newAuthTestEnv(t)

	// signup succeeds, even with a trivially weak password
	w := env.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "u1", "email": "u1@x.com", "password": "p1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "account created", decodeBody(t, w)["message"])

	// second signup with the same email is rejected
	w = env.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "u2", "email": "u1@x.com", "password": "p2",
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "email already registered", decodeBody(t, w)["message"])

	// wrong password is rejected
	w = env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "u1@x.com", "password": "wrong",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// correct login yields a token
	w = env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "u1@x.com", "password": "p1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "login response carries a data object")
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	bearer := map[string]string{"Authorization": "Bearer " + token}

	// the token resolves to the signed-up account
	w = env.do(t, http.MethodGet, "/api/auth/current-user", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	view, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "u1@x.com", view["email"])
	assert.Equal(t, "u1", view["name"])
	// the digest never leaves through the view
	assert.NotContains(t, view, "password")

	// logout revokes the token
	w = env.do(t, http.MethodPost, "/api/auth/logout", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code)

	// the revoked token is refused even though it is still within expiry
	w = env.do(t, http.MethodGet, "/api/auth/current-user", nil, bearer)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token is invalidated (logged out)", decodeBody(t, w)["message"])

	// logging out again still succeeds
	w = env.do(t, http.MethodPost, "/api/auth/logout", nil, bearer)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_LoginFailuresSameShape(t *testing.T) {
	env := newAuthTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "u1", "email": "u1@x.com", "password": "p1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	wrongPassword := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "u1@x.com", "password": "nope",
	}, nil)
	unknownEmail := env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "nobody@x.com", "password": "p1",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)

	// identical bodies modulo the envelope timestamp
	a := decodeBody(t, wrongPassword)
	b := decodeBody(t, unknownEmail)
	delete(a, "timestamp")
	delete(b, "timestamp")
	assert.Equal(t, a, b)
}

func TestAuthHandler_AuthorizationHeaderValidation(t *testing.T) {
	env := newAuthTestEnv(t)

	headers := []struct {
		name  string
		value string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"no token", "Bearer "},
		{"bare scheme", "Bearer"},
		{"embedded space", "Bearer one two"},
	}
	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/api/auth/current-user"},
	} {
		for _, h := range headers {
			t.Run(route.path+"/"+h.name, func(t *testing.T) {
				var hdr map[string]string
				if h.value != "" {
					hdr = map[string]string{"Authorization": h.value}
				}
				w := env.do(t, route.method, route.path, nil, hdr)
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, "missing or invalid authorization header", decodeBody(t, w)["message"])
			})
		}
	}
}

func TestAuthHandler_CurrentUserTokenErrors(t *testing.T) {
	env := newAuthTestEnv(t)

	// syntactically fine header, but the token was never issued here
	w := env.do(t, http.MethodGet, "/api/auth/current-user", nil,
		map[string]string{"Authorization": "Bearer not-a-jwt"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid or expired token", decodeBody(t, w)["message"])
}

func TestAuthHandler_CurrentUserAccountGone(t *testing.T) {
	env := newAuthTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"name": "u1", "email": "u1@x.com", "password": "p1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email": "u1@x.com", "password": "p1",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	token := data["token"].(string)

	delete(env.repo.accounts, "u1@x.com")

	w = env.do(t, http.MethodGet, "/api/auth/current-user", nil,
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "account not found", decodeBody(t, w)["message"])
}

func TestAuthHandler_SignupMissingFields(t *testing.T) {
	env := newAuthTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/signup", gin.H{
		"email": "u1@x.com",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
