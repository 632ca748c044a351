package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/awesome-blog/internal/config"
	"github.com/deppfellow/awesome-blog/internal/errs"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "local"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				AuthRateLimit:      1,
			},
			Auth: config.AuthConfig{
				SecretKey:  "test-secret",
				SessionTTL: time.Hour,
				CookieName: "awesession",
			},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

type fakeUsers map[string]*model.User

func (f fakeUsers) GetUser(_ context.Context, id string) (*model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("table:users: %w", pgx.ErrNoRows)
}

var (
	alice = &model.User{ID: "alice", Name: "Alice"}
	root  = &model.User{ID: "root", Name: "Root", Admin: true}
)

func newAuthFixture() (*echo.Echo, *service.AuthService) {
	s := testServer()
	auth := service.NewAuthService(s)
	m := NewAuthMiddleware(s, auth, fakeUsers{"alice": alice, "root": root})
	global := NewGlobalMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(m.LoadUser)

	whoami := func(c echo.Context) error {
		if user := GetUser(c); user != nil {
			return c.String(http.StatusOK, user.ID)
		}
		return c.String(http.StatusOK, "anonymous")
	}
	e.GET("/whoami", whoami)
	e.GET("/private", whoami, m.RequireAuth)
	e.GET("/admin", whoami, m.RequireAdmin)
	return e, auth
}

func doRequest(e *echo.Echo, path string, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func withCookie(t *testing.T, auth *service.AuthService, user *model.User) func(*http.Request) {
	token, err := auth.IssueToken(user)
	require.NoError(t, err)
	return func(r *http.Request) { r.AddCookie(auth.SessionCookie(token)) }
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()
	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestLoadUserFromCookie(t *testing.T) {
	e, auth := newAuthFixture()

	rec := doRequest(e, "/whoami", withCookie(t, auth, alice))
	assert.Equal(t, "alice", rec.Body.String())
}

func TestLoadUserFromBearer(t *testing.T) {
	e, auth := newAuthFixture()
	token, err := auth.IssueToken(root)
	require.NoError(t, err)

	rec := doRequest(e, "/whoami", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	assert.Equal(t, "root", rec.Body.String())
}

func TestLoadUserIgnoresBadSessions(t *testing.T) {
	e, auth := newAuthFixture()

	rec := doRequest(e, "/whoami", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "awesession", Value: "forged"})
	})
	assert.Equal(t, "anonymous", rec.Body.String())

	rec = doRequest(e, "/whoami", withCookie(t, auth, &model.User{ID: "deleted"}))
	assert.Equal(t, "anonymous", rec.Body.String())
}

func TestRequireAuth(t *testing.T) {
	e, auth := newAuthFixture()

	rec := doRequest(e, "/private", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decodeError(t, rec)
	require.NotNil(t, body.Action)
	assert.Equal(t, "/signin", body.Action.Value)

	rec = doRequest(e, "/private", withCookie(t, auth, alice))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	e, auth := newAuthFixture()

	rec := doRequest(e, "/admin", withCookie(t, auth, alice))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, errs.CodePermissionForbidden, decodeError(t, rec).Code)

	rec = doRequest(e, "/admin", withCookie(t, auth, root))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "root", rec.Body.String())
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())
	e.GET("/", func(c echo.Context) error { return c.String(http.StatusOK, GetRequestID(c)) })

	rec := doRequest(e, "/", nil)
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	rec = doRequest(e, "/", func(r *http.Request) { r.Header.Set(RequestIDHeader, "abc") })
	assert.Equal(t, "abc", rec.Body.String())

	for _, bad := range []string{"has space", "line\nbreak", strings.Repeat("a", 129)} {
		rec = doRequest(e, "/", func(r *http.Request) { r.Header.Set(RequestIDHeader, bad) })
		assert.Len(t, rec.Body.String(), 36, "id %q should be replaced", bad)
		assert.NotEqual(t, bad, rec.Header().Get(RequestIDHeader))
	}

	rec = doRequest(e, "/", func(r *http.Request) { r.Header.Set(RequestIDHeader, "trace_1.a:b-c") })
	assert.Equal(t, "trace_1.a:b-c", rec.Body.String())
}

func TestEnhanceContextPutsLoggerInContext(t *testing.T) {
	var buf bytes.Buffer
	s := testServer()
	logger := zerolog.New(&buf)
	s.Logger = &logger

	e := echo.New()
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext())
	e.GET("/posts", func(c echo.Context) error {
		GetLogger(c).Info().Msg("from echo")
		zerolog.Ctx(c.Request().Context()).Info().Msg("from context")
		return c.NoContent(http.StatusNoContent)
	})

	doRequest(e, "/posts", func(r *http.Request) { r.Header.Set(RequestIDHeader, "req-1") })

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `"request_id":"req-1"`)
		assert.Contains(t, line, `"path":"/posts"`)
	}
}

func TestEnhanceContextAddsSignedInUser(t *testing.T) {
	var buf bytes.Buffer
	s := testServer()
	logger := zerolog.New(&buf)
	s.Logger = &logger
	auth := service.NewAuthService(s)
	m := NewAuthMiddleware(s, auth, fakeUsers{"root": root})

	e := echo.New()
	e.Use(RequestID(), m.LoadUser, NewContextEnhancer(s).EnhanceContext())
	e.GET("/admin", func(c echo.Context) error {
		GetLogger(c).Info().Msg("admin page")
		return c.String(http.StatusOK, GetUserID(c))
	})

	rec := doRequest(e, "/admin", withCookie(t, auth, root))

	assert.Equal(t, "root", rec.Body.String())
	assert.Contains(t, buf.String(), `"user_id":"root"`)
	assert.Contains(t, buf.String(), `"admin":true`)
}

func TestGlobalErrorHandler(t *testing.T) {
	s := testServer()
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler

	e.GET("/value", func(c echo.Context) error { return errs.NewValueError("email", "Email not exist.") })
	e.GET("/missing", func(c echo.Context) error { return fmt.Errorf("table:blogs: %w", pgx.ErrNoRows) })
	e.GET("/boom", func(c echo.Context) error { return fmt.Errorf("dial tcp: refused") })

	rec := doRequest(e, "/value", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, errs.CodeValueInvalid, body.Code)
	assert.True(t, body.Override)
	assert.Equal(t, []errs.FieldError{{Field: "email", Error: "Email not exist."}}, body.Errors)

	rec = doRequest(e, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Blog not found", decodeError(t, rec).Message)

	rec = doRequest(e, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "refused")

	rec = doRequest(e, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestAuthLimiter(t *testing.T) {
	s := testServer()
	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(s).GlobalErrorHandler
	e.POST("/api/authenticate", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, NewRateLimitMiddleware(s).AuthLimiter())

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/authenticate", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusNoContent, send().Code)

	rec := send()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, rec).Code)
}

func TestRequestAttributes(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/blog/b1", nil)
	req.Header.Set("User-Agent", "tests")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/blog/:id")
	c.Set(RequestIDKey, "req-9")
	c.Set(UserKey, root)

	attrs := requestAttributes(c)

	assert.Equal(t, "/blog/:id", attrs["http.route"])
	assert.Equal(t, "tests", attrs["http.user_agent"])
	assert.Equal(t, "req-9", attrs["request.id"])
	assert.Equal(t, "root", attrs["user.id"])
	assert.Equal(t, true, attrs["user.admin"])

	anonymous := requestAttributes(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder()))
	assert.NotContains(t, anonymous, "user.id")
	assert.NotContains(t, anonymous, "request.id")
	assert.NotContains(t, anonymous, "http.user_agent")
}
