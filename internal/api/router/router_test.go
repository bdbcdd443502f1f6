package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/router"
	"vidtube-go/internal/app"
	"vidtube-go/internal/config"
	"vidtube-go/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

type server struct {
	engine *gin.Engine
	db     *gorm.DB
	store  *testutil.FakeStore
}

func newServer(t *testing.T, limit int) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App: config.AppConfig{
			Name:        "vidtube-test",
			Version:     "test",
			UploadDir:   t.TempDir(),
			MaxUploadMB: 4,
		},
		Auth: config.AuthConfig{
			AccessTokenSecret:  "access-secret",
			RefreshTokenSecret: "refresh-secret",
		},
		RateLimit: config.RateLimitConfig{Requests: limit, WindowSeconds: 60, Burst: limit},
	}

	db := testutil.OpenDB(t)
	store := testutil.NewFakeStore()
	services := app.NewServices(&app.Infra{
		DB:     db,
		Store:  store,
		Tokens: app.NewTokenManager(&cfg.Auth, cfg.App.Name),
	})
	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window(), cfg.RateLimit.Burst)
	engine := router.New(cfg, app.NewHandlers(cfg, services), services.Auth, limiter)

	return &server{engine: engine, db: db, store: store}
}

func (s *server) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func jsonRequest(method, path, token string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func registerRequest(t *testing.T, username string, withAvatar bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("username", username))
	require.NoError(t, w.WriteField("email", strings.ToLower(username)+"@example.com"))
	require.NoError(t, w.WriteField("fullName", "Full "+username))
	require.NoError(t, w.WriteField("password", "secret123"))
	if withAvatar {
		part, err := w.CreateFormFile("avatar", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write(pngBytes)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// signup 注册并登录，返回访问令牌与用户ID
func (s *server) signup(t *testing.T, username string) (string, int64) {
	t.Helper()
	rec, _ := s.do(t, registerRequest(t, username, true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := s.do(t, jsonRequest(http.MethodPost, "/api/user/login", "", map[string]string{
		"username": username,
		"password": "secret123",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var data struct {
		User struct {
			ID int64 `json:"id"`
		} `json:"user"`
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data.AccessToken, data.User.ID
}

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	s := newServer(t, 100)

	rec, env := s.do(t, registerRequest(t, "Alice", true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, string(env.Data), "refreshToken")

	var user struct {
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "alice", user.Username)
	assert.True(t, s.store.Has(user.Avatar))

	rec, env = s.do(t, jsonRequest(http.MethodPost, "/api/user/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret123",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, middleware.AccessTokenCookie)
	require.Contains(t, cookies, middleware.RefreshTokenCookie)
	assert.True(t, cookies[middleware.AccessTokenCookie].HttpOnly)

	var login struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, cookies[middleware.AccessTokenCookie].Value, login.AccessToken)

	rec, env = s.do(t, jsonRequest(http.MethodGet, "/api/user/current-user", login.AccessToken, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "alice", user.Username)

	// Cookie 同样可用于鉴权
	req := httptest.NewRequest(http.MethodGet, "/api/user/current-user", nil)
	req.AddCookie(cookies[middleware.AccessTokenCookie])
	rec, _ = s.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newServer(t, 100)

	rec, env := s.do(t, registerRequest(t, "bob", false))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Avatar file is required", env.Message)
	assert.NotNil(t, env.Errors)
	assert.Contains(t, rec.Body.String(), `"errors":[]`)

	s.signup(t, "carol")
	rec, _ = s.do(t, registerRequest(t, "carol", true))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterRejectsWrongFileType(t *testing.T) {
	s := newServer(t, 100)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range map[string]string{"username": "dave", "email": "dave@example.com", "fullName": "Dave", "password": "pw"} {
		require.NoError(t, w.WriteField(k, v))
	}
	part, err := w.CreateFormFile("avatar", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text pretending to be an image"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/user/register", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec, env := s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid file type for avatar", env.Message)
	assert.Equal(t, 0, s.store.Count())
}

func TestAuthRequired(t *testing.T) {
	s := newServer(t, 100)

	rec, env := s.do(t, jsonRequest(http.MethodGet, "/api/user/current-user", "", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
	assert.False(t, env.Success)

	rec, _ = s.do(t, jsonRequest(http.MethodGet, "/api/user/current-user", "not-a-token", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLikeToggleMessages(t *testing.T) {
	s := newServer(t, 100)
	token, _ := s.signup(t, "erin")
	owner := testutil.CreateUser(t, s.db, "owner")
	video := testutil.CreateVideo(t, s.db, owner.ID, "clip", true)
	path := fmt.Sprintf("/api/like/toggle/video/%d", video.ID)

	rec, env := s.do(t, jsonRequest(http.MethodPost, path, token, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Liked", env.Message)
	assert.JSONEq(t, fmt.Sprintf(`{"targetType":"video","targetId":%d,"isLiked":true,"likesCount":1}`, video.ID), string(env.Data))

	_, env = s.do(t, jsonRequest(http.MethodPost, path, token, nil))
	assert.Equal(t, "Unliked", env.Message)

	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/like/toggle/video/abc", token, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/like/toggle/video/999", token, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestVideoListAndDetail(t *testing.T) {
	s := newServer(t, 100)
	owner := testutil.CreateUser(t, s.db, "frank")
	public := testutil.CreateVideo(t, s.db, owner.ID, "public clip", true)
	hidden := testutil.CreateVideo(t, s.db, owner.ID, "hidden clip", false)

	rec, env := s.do(t, jsonRequest(http.MethodGet, "/api/video?query=CLIP&limit=5", "", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var page struct {
		Items []struct {
			ID    int64 `json:"id"`
			Owner struct {
				Username string `json:"username"`
			} `json:"owner"`
		} `json:"items"`
		Total int64 `json:"total"`
		Limit int   `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, public.ID, page.Items[0].ID)
	assert.Equal(t, "frank", page.Items[0].Owner.Username)
	assert.Equal(t, 5, page.Limit)

	rec, _ = s.do(t, jsonRequest(http.MethodGet, "/api/video?sortBy=rating", "", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.do(t, jsonRequest(http.MethodGet, fmt.Sprintf("/api/video/%d", hidden.ID), "", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = s.do(t, jsonRequest(http.MethodGet, fmt.Sprintf("/api/video/%d", public.ID), "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		Views   int64 `json:"views"`
		IsLiked bool  `json:"isLiked"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.EqualValues(t, 1, detail.Views)
	assert.False(t, detail.IsLiked)
}

func TestSubscriptionToggle(t *testing.T) {
	s := newServer(t, 100)
	token, userID := s.signup(t, "gina")
	channel := testutil.CreateUser(t, s.db, "channel")

	rec, env := s.do(t, jsonRequest(http.MethodPost, fmt.Sprintf("/api/subscription/c/%d", channel.ID), token, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Subscribed", env.Message)

	rec, _ = s.do(t, jsonRequest(http.MethodPost, fmt.Sprintf("/api/subscription/c/%d", userID), token, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaylistAndTweetRoutes(t *testing.T) {
	s := newServer(t, 100)
	token, userID := s.signup(t, "hank")

	rec, env := s.do(t, jsonRequest(http.MethodPost, "/api/playlist", token, map[string]string{"name": "Favorites"}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var playlist struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &playlist))

	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/playlist", token, map[string]string{"name": "Favorites"}))
	assert.Equal(t, http.StatusConflict, rec.Code)

	video := testutil.CreateVideo(t, s.db, userID, "mine", true)
	addPath := fmt.Sprintf("/api/playlist/add/%d/%d", video.ID, playlist.ID)
	rec, _ = s.do(t, jsonRequest(http.MethodPatch, addPath, token, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec, env = s.do(t, jsonRequest(http.MethodPatch, addPath, token, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Video already exists in playlist", env.Message)

	rec, env = s.do(t, jsonRequest(http.MethodGet, fmt.Sprintf("/api/playlist/%d", playlist.ID), "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"videosCount":1`)

	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/tweets", token, map[string]string{"content": "  "}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/tweets", token, map[string]string{"content": "hello"}))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.do(t, jsonRequest(http.MethodGet, fmt.Sprintf("/api/tweets/user/%d", userID), "", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Data), `"total":1`)
}

func TestLogoutClearsCookies(t *testing.T) {
	s := newServer(t, 100)
	token, _ := s.signup(t, "ivy")

	rec, _ := s.do(t, jsonRequest(http.MethodPost, "/api/user/logout", token, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	for _, c := range rec.Result().Cookies() {
		assert.Empty(t, c.Value, c.Name)
		assert.Less(t, c.MaxAge, 0, c.Name)
	}
	assert.Len(t, rec.Result().Cookies(), 2)
}

func TestUnknownRouteAndRateLimit(t *testing.T) {
	s := newServer(t, 1)

	rec, env := s.do(t, jsonRequest(http.MethodGet, "/api/nope", "", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)

	body := map[string]string{"username": "nobody", "password": "x"}
	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/user/login", "", body))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, env = s.do(t, jsonRequest(http.MethodPost, "/api/user/login", "", body))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, http.StatusTooManyRequests, env.StatusCode)
}

func TestHealthz(t *testing.T) {
	s := newServer(t, 100)
	rec, env := s.do(t, jsonRequest(http.MethodGet, "/healthz", "", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
}
