package handler

import (
	"net/http"

	"github.com/deppfellow/awesome-blog/internal/middleware"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/service"
	"github.com/labstack/echo/v4"
)

// UserHandler serves registration, sign-in and the user listing.
type UserHandler struct {
	Handler
	users *service.UserService
	auth  *service.AuthService
}

// NewUserHandler creates a UserHandler. Sessions are issued through auth.
func NewUserHandler(s *server.Server, users *service.UserService, auth *service.AuthService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
		auth:    auth,
	}
}

// Register creates the account and signs the new user in.
func (h *UserHandler) Register(c echo.Context, req *model.RegisterUserRequest) (*model.User, error) {
	session, err := h.users.Register(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	c.SetCookie(h.auth.SessionCookie(session.Token))
	return session.User, nil
}

// Authenticate checks the credentials and sets the session cookie.
func (h *UserHandler) Authenticate(c echo.Context, req *model.AuthenticateRequest) (*model.User, error) {
	session, err := h.users.Authenticate(c.Request().Context(), req)
	if err != nil {
		return nil, err
	}
	c.SetCookie(h.auth.SessionCookie(session.Token))
	return session.User, nil
}

// Signout drops the session cookie and sends the browser back where it came from.
func (h *UserHandler) Signout(c echo.Context) error {
	c.SetCookie(h.auth.ClearCookie())

	referer := c.Request().Referer()
	if referer == "" {
		referer = "/"
	}

	middleware.GetLogger(c).Info().Msg("user signed out")
	return c.Redirect(http.StatusFound, referer)
}

// ListUsers returns one page of users, newest first.
func (h *UserHandler) ListUsers(c echo.Context, req *model.PageQuery) (*model.Listing[model.User], error) {
	return h.users.List(c.Request().Context(), req.Index())
}
