package handler

import (
	"fmt"

	"github.com/deppfellow/awesome-blog/internal/middleware"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/service"
	"github.com/labstack/echo/v4"
)

// BlogHandler serves the blog API. Writes are admin only; the router
// enforces that before a handler runs.
type BlogHandler struct {
	Handler
	blogs *service.BlogService
}

func NewBlogHandler(s *server.Server, blogs *service.BlogService) *BlogHandler {
	return &BlogHandler{
		Handler: NewHandler(s),
		blogs:   blogs,
	}
}

// DeletedResponse is returned by the delete endpoints.
type DeletedResponse struct {
	ID string `json:"id"`
}

// ListBlogs returns one page of blogs, newest first.
func (h *BlogHandler) ListBlogs(c echo.Context, req *model.PageQuery) (*model.Listing[model.Blog], error) {
	return h.blogs.List(c.Request().Context(), req.Index())
}

// GetBlog returns a blog by id or a 404.
func (h *BlogHandler) GetBlog(c echo.Context, req *model.IDParam) (*model.Blog, error) {
	return h.blogs.Get(c.Request().Context(), req.ID)
}

// ExportBlog returns the blog as a markdown document.
func (h *BlogHandler) ExportBlog(c echo.Context, req *model.IDParam) ([]byte, error) {
	blog, err := h.blogs.Get(c.Request().Context(), req.ID)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("# %s\n\n> %s\n\n%s\n", blog.Name, blog.Summary, blog.Content)), nil
}

// CreateBlog publishes a blog under the signed-in admin.
func (h *BlogHandler) CreateBlog(c echo.Context, req *model.BlogRequest) (*model.Blog, error) {
	return h.blogs.Create(c.Request().Context(), middleware.GetUser(c), req)
}

// UpdateBlog rewrites the name, summary and content of the blog at :id.
func (h *BlogHandler) UpdateBlog(c echo.Context, req *model.BlogRequest) (*model.Blog, error) {
	return h.blogs.Update(c.Request().Context(), middleware.GetUser(c), req)
}

// DeleteBlog removes the blog and answers with its id.
func (h *BlogHandler) DeleteBlog(c echo.Context, req *model.IDParam) (*DeletedResponse, error) {
	if err := h.blogs.Delete(c.Request().Context(), middleware.GetUser(c), req.ID); err != nil {
		return nil, err
	}
	return &DeletedResponse{ID: req.ID}, nil
}
