package handler

import (
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/service"
)

// Handlers groups every HTTP handler so the router is wired from one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	User    *UserHandler
	Blog    *BlogHandler
	Comment *CommentHandler
	Page    *PageHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		User:    NewUserHandler(s, services.User, services.Auth),
		Blog:    NewBlogHandler(s, services.Blog),
		Comment: NewCommentHandler(s, services.Comment),
		Page:    NewPageHandler(s, services.User, services.Blog),
	}
}
