package router

import (
	"github.com/deppfellow/awesome-blog/internal/handler"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/deppfellow/awesome-blog/internal/templates"
	"github.com/labstack/echo/v4"
)

func registerPageRoutes(r *echo.Echo, h *handler.Handlers) {
	pages := h.Page

	r.GET("/", handler.HandleTemplate(pages.Handler, pages.Blogs, templates.PageBlogs, &model.PageQuery{}))
	r.GET("/blog/:id", handler.HandleTemplate(pages.Handler, pages.Blog, templates.PageBlog, &model.IDParam{}))
	r.GET("/users", handler.HandleTemplate(pages.Handler, pages.Users, templates.PageUsers, &model.PageQuery{}))
	r.GET("/register", handler.HandleTemplate(pages.Handler, pages.Form, templates.PageRegister, &handler.NoArgs{}))
	r.GET("/signin", handler.HandleTemplate(pages.Handler, pages.Form, templates.PageSignin, &handler.NoArgs{}))

	r.GET("/signout", h.User.Signout)
}
