package middleware

import (
	"context"
	"strings"

	"github.com/deppfellow/awesome-blog/internal/errs"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/service"
	"github.com/labstack/echo/v4"
)

// UserKey is the echo context key of the signed-in *model.User.
const UserKey = "user"

// UserLookup loads the user a session token points at.
type UserLookup interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

type AuthMiddleware struct {
	server *server.Server
	auth   *service.AuthService
	users  UserLookup
}

func NewAuthMiddleware(s *server.Server, auth *service.AuthService, users UserLookup) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		auth:   auth,
		users:  users,
	}
}

// sessionToken reads the session cookie, falling back to a bearer token.
func (m *AuthMiddleware) sessionToken(c echo.Context) string {
	if cookie, err := c.Cookie(m.auth.CookieName()); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// LoadUser resolves the session on every request. A missing, expired or
// forged session leaves the request anonymous.
func (m *AuthMiddleware) LoadUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := m.sessionToken(c)
		if token == "" {
			return next(c)
		}

		claims, err := m.auth.ParseToken(token)
		if err != nil {
			m.server.Logger.Debug().
				Err(err).
				Str("request_id", GetRequestID(c)).
				Msg("ignoring invalid session")
			return next(c)
		}

		user, err := m.users.GetUser(c.Request().Context(), claims.Subject)
		if err != nil {
			m.server.Logger.Warn().
				Err(err).
				Str("request_id", GetRequestID(c)).
				Str("user_id", claims.Subject).
				Msg("session user not found")
			return next(c)
		}

		c.Set(UserKey, user)

		return next(c)
	}
}

// RequireAuth rejects anonymous requests with 401.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetUser(c) == nil {
			return errs.NewUnauthorizedError("Please signin first.", true).WithAction(&errs.Action{
				Type:    errs.ActionTypeRedirect,
				Message: "Sign in to continue",
				Value:   "/signin",
			})
		}
		return next(c)
	}
}

// RequireAdmin rejects everyone but administrators with a permission error.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := GetUser(c)
		if user == nil || !user.Admin {
			return errs.NewPermissionError("")
		}
		return next(c)
	}
}

// GetUser returns the signed-in user, or nil.
func GetUser(c echo.Context) *model.User {
	if user, ok := c.Get(UserKey).(*model.User); ok {
		return user
	}
	return nil
}
