// Package service holds the business rules of the blog.
//
// Services receive validated requests from the handlers, enforce who may do
// what, and go through the repositories for storage.
package service

import (
	"github.com/deppfellow/awesome-blog/internal/lib/job"
	"github.com/deppfellow/awesome-blog/internal/lib/markdown"
	"github.com/deppfellow/awesome-blog/internal/repository"
	"github.com/deppfellow/awesome-blog/internal/server"
)

// Services groups the business services the handlers depend on.
type Services struct {
	Auth     *AuthService
	User     *UserService
	Blog     *BlogService
	Comment  *CommentService
	Markdown *markdown.Renderer
	Job      *job.JobService
}

// NewService wires every service on top of the repositories. Welcome
// emails are only enqueued when the server runs a job service.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService := NewAuthService(s)
	md := markdown.New()

	var jobs Enqueuer
	if s.Job != nil {
		jobs = s.Job
	}

	return &Services{
		Auth:     authService,
		User:     NewUserService(repos.Users, authService, jobs),
		Blog:     NewBlogService(repos.Blogs, repos.Comments, md),
		Comment:  NewCommentService(repos.Comments, repos.Blogs),
		Markdown: md,
		Job:      s.Job,
	}, nil
}
