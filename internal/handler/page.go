package handler

import (
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/service"
	"github.com/labstack/echo/v4"
)

// NoArgs is the request of endpoints that take no arguments.
type NoArgs struct{}

func (*NoArgs) Validate() error { return nil }

// PageHandler serves the server-rendered pages. Each method returns the data
// its template is executed with.
type PageHandler struct {
	Handler
	users *service.UserService
	blogs *service.BlogService
}

func NewPageHandler(s *server.Server, users *service.UserService, blogs *service.BlogService) *PageHandler {
	return &PageHandler{
		Handler: NewHandler(s),
		users:   users,
		blogs:   blogs,
	}
}

func (h *PageHandler) Blogs(c echo.Context, req *model.PageQuery) (*model.Listing[model.Blog], error) {
	return h.blogs.List(c.Request().Context(), req.Index())
}

func (h *PageHandler) Blog(c echo.Context, req *model.IDParam) (*service.BlogPage, error) {
	return h.blogs.GetForDisplay(c.Request().Context(), req.ID)
}

func (h *PageHandler) Users(c echo.Context, req *model.PageQuery) (*model.Listing[model.User], error) {
	return h.users.List(c.Request().Context(), req.Index())
}

// Form serves pages without data, such as register and signin.
func (h *PageHandler) Form(c echo.Context, req *NoArgs) (any, error) {
	return nil, nil
}
