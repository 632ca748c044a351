package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/awesome-blog/internal/errs"
	"github.com/deppfellow/awesome-blog/internal/model"
)

type CommentService struct {
	comments commentStore
	blogs    blogStore
}

func NewCommentService(comments commentStore, blogs blogStore) *CommentService {
	return &CommentService{comments: comments, blogs: blogs}
}

func (s *CommentService) List(ctx context.Context, index int64) (*model.Listing[model.Comment], error) {
	page, comments, err := s.comments.ListPage(ctx, index, model.DefaultPageSize)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return &model.Listing[model.Comment]{Page: page, Items: comments}, nil
}

// Create adds a comment by user under an existing blog.
func (s *CommentService) Create(ctx context.Context, user *model.User, req *model.CreateCommentRequest) (*model.Comment, error) {
	if user == nil {
		return nil, errs.NewPermissionError("Please signin first.")
	}

	blog, err := s.blogs.GetByID(ctx, req.BlogID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		BlogID:    blog.ID,
		UserID:    user.ID,
		UserName:  user.Name,
		UserImage: user.Image,
		Content:   req.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, user *model.User, id string) error {
	if err := checkAdmin(user); err != nil {
		return err
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return s.comments.Delete(ctx, comment)
}
