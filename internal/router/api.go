package router

import (
	"net/http"

	"github.com/deppfellow/awesome-blog/internal/handler"
	"github.com/deppfellow/awesome-blog/internal/middleware"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/labstack/echo/v4"
)

func registerAPIRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	api := r.Group("/api")

	authLimiter := m.RateLimit.AuthLimiter()
	admin := m.Auth.RequireAdmin

	users := h.User
	api.POST("/users", handler.Handle(users.Handler, users.Register, http.StatusOK, &model.RegisterUserRequest{}), authLimiter)
	api.POST("/authenticate", handler.Handle(users.Handler, users.Authenticate, http.StatusOK, &model.AuthenticateRequest{}), authLimiter)
	api.GET("/users", handler.Handle(users.Handler, users.ListUsers, http.StatusOK, &model.PageQuery{}))

	blogs := h.Blog
	api.GET("/blogs", handler.Handle(blogs.Handler, blogs.ListBlogs, http.StatusOK, &model.PageQuery{}))
	api.GET("/blogs/:id", handler.Handle(blogs.Handler, blogs.GetBlog, http.StatusOK, &model.IDParam{}))
	api.GET("/blogs/:id/export", handler.HandleFile(blogs.Handler, blogs.ExportBlog, http.StatusOK, &model.IDParam{},
		"blog.md", "text/markdown; charset=utf-8"))
	api.POST("/blogs", handler.Handle(blogs.Handler, blogs.CreateBlog, http.StatusOK, &model.BlogRequest{}), admin)
	api.POST("/blogs/:id", handler.Handle(blogs.Handler, blogs.UpdateBlog, http.StatusOK, &model.BlogRequest{}), admin)
	api.POST("/blogs/:id/delete", handler.Handle(blogs.Handler, blogs.DeleteBlog, http.StatusOK, &model.IDParam{}), admin)

	comments := h.Comment
	api.GET("/comments", handler.Handle(comments.Handler, comments.ListComments, http.StatusOK, &model.PageQuery{}))
	api.POST("/blogs/:id/comments", handler.Handle(comments.Handler, comments.CreateComment, http.StatusOK, &model.CreateCommentRequest{}), m.Auth.RequireAuth)
	api.POST("/comments/:id/delete", handler.Handle(comments.Handler, comments.DeleteComment, http.StatusOK, &model.IDParam{}), admin)
}
