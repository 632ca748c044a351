package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/awesome-blog/internal/errs"
	"github.com/deppfellow/awesome-blog/internal/lib/markdown"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/rs/zerolog"
)

type BlogService struct {
	blogs    blogStore
	comments commentStore
	markdown *markdown.Renderer
}

func NewBlogService(blogs blogStore, comments commentStore, md *markdown.Renderer) *BlogService {
	return &BlogService{blogs: blogs, comments: comments, markdown: md}
}

// checkAdmin rejects anyone who is not a signed-in administrator.
func checkAdmin(user *model.User) error {
	if user == nil || !user.Admin {
		return errs.NewPermissionError("")
	}
	return nil
}

func (s *BlogService) List(ctx context.Context, index int64) (*model.Listing[model.Blog], error) {
	page, blogs, err := s.blogs.ListPage(ctx, index, model.DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return &model.Listing[model.Blog]{Page: page, Items: blogs}, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	return s.blogs.GetByID(ctx, id)
}

// BlogPage is a blog prepared for display with its comments.
type BlogPage struct {
	Blog     *model.Blog
	Comments []*model.Comment
}

// GetForDisplay loads a blog with its comments and renders both to HTML.
func (s *BlogService) GetForDisplay(ctx context.Context, id string) (*BlogPage, error) {
	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByBlog(ctx, id)
	if err != nil {
		return nil, err
	}

	blog.HTMLContent = s.markdown.Render(blog.Content)
	for _, c := range comments {
		c.HTMLContent = markdown.Text2HTML(c.Content)
	}
	return &BlogPage{Blog: blog, Comments: comments}, nil
}

func (s *BlogService) Create(ctx context.Context, user *model.User, req *model.BlogRequest) (*model.Blog, error) {
	if err := checkAdmin(user); err != nil {
		return nil, err
	}

	blog := &model.Blog{
		UserID:    user.ID,
		UserName:  user.Name,
		UserImage: user.Image,
		Name:      req.Name,
		Summary:   req.Summary,
		Content:   req.Content,
	}
	if err := s.blogs.Create(ctx, blog); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().Str("blog_id", blog.ID).Msg("blog created")
	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, user *model.User, req *model.BlogRequest) (*model.Blog, error) {
	if err := checkAdmin(user); err != nil {
		return nil, err
	}

	blog, err := s.blogs.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	blog.Name = req.Name
	blog.Summary = req.Summary
	blog.Content = req.Content
	if err := s.blogs.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete removes a blog; its comments go with it.
func (s *BlogService) Delete(ctx context.Context, user *model.User, id string) error {
	if err := checkAdmin(user); err != nil {
		return err
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.blogs.Delete(ctx, blog); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("blog_id", id).Msg("blog deleted")
	return nil
}
