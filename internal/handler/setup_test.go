package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/mmark/internal/handler"
	"github.com/xxxsen/mmark/internal/metrics"
	"github.com/xxxsen/mmark/internal/middleware"
	"github.com/xxxsen/mmark/internal/service"
)

var testSecret = []byte("test-secret")

type stubPinger struct {
	err error
}

func (s stubPinger) PingContext(ctx context.Context) error {
	return s.err
}

type testEnv struct {
	router    http.Handler
	users     *memUsers
	bookmarks *memBookmarks
	metrics   *metrics.Metrics
}

func setupRouter(t *testing.T, pinger handler.Pinger) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUsers()
	bookmarks := newMemBookmarks()
	m := metrics.New(prometheus.NewRegistry())

	authService := service.NewAuthService(users, testSecret)
	deps := handler.RouterDeps{
		Auth:          handler.NewAuthHandler(authService, m),
		Users:         handler.NewUserHandler(service.NewUserService(users)),
		Bookmarks:     handler.NewBookmarkHandler(service.NewBookmarkService(bookmarks)),
		Health:        handler.NewHealthHandler(pinger),
		Authenticator: authService,
		Metrics:       m,
	}

	engine := gin.New()
	engine.Use(middleware.RequestID(), middleware.Instrument(m))
	handler.RegisterRoutes(engine.Group("/"), deps)
	return &testEnv{router: engine, users: users, bookmarks: bookmarks, metrics: m}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch v := body.(type) {
		case string:
			buf.WriteString(v)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(v))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func (e *testEnv) signup(t *testing.T, email, pw string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/auth/signup", "", map[string]string{"email": email, "password": pw})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out))
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

type errorBody struct {
	StatusCode int         `json:"statusCode"`
	Message    interface{} `json:"message"`
	Error      string      `json:"error"`
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var out errorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &out), resp.Body.String())
	require.Equal(t, resp.Code, out.StatusCode)
	require.Equal(t, http.StatusText(resp.Code), out.Error)
	return out
}
