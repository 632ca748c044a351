package model

import (
	"strings"

	"github.com/deppfellow/awesome-blog/internal/errs"
)

// RegisterUserRequest is the payload of POST /api/users. Email is stored
// lower-cased and names are trimmed before they are checked.
type RegisterUserRequest struct {
	Name   string `json:"name" form:"name" validate:"required,max=50"`
	Email  string `json:"email" form:"email" validate:"required,email,max=50"`
	Passwd string `json:"passwd" form:"passwd" validate:"required,min=6"`
}

func (r *RegisterUserRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if r.Name == "" {
		return errs.NewValueError("name", "")
	}
	return nil
}

// AuthenticateRequest is the sign-in payload of POST /api/authenticate.
type AuthenticateRequest struct {
	Email  string `json:"email" form:"email" validate:"required,email"`
	Passwd string `json:"passwd" form:"passwd" validate:"required"`
}

func (r *AuthenticateRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return nil
}

// PageQuery reads the optional ?page= of listing endpoints.
type PageQuery struct {
	Page int64 `query:"page" validate:"omitempty,min=1"`
}

func (r *PageQuery) Validate() error { return nil }

// Index returns the requested page, defaulting to 1.
func (r *PageQuery) Index() int64 {
	if r.Page < 1 {
		return 1
	}
	return r.Page
}

// IDParam binds the :id path parameter.
type IDParam struct {
	ID string `param:"id" validate:"required,max=50"`
}

func (r *IDParam) Validate() error { return nil }

// BlogRequest creates a blog, or updates the one named by :id.
type BlogRequest struct {
	ID      string `param:"id" json:"id" form:"id"`
	Name    string `json:"name" form:"name" validate:"required,max=50"`
	Summary string `json:"summary" form:"summary" validate:"required,max=200"`
	Content string `json:"content" form:"content" validate:"required"`
}

func (r *BlogRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Content = strings.TrimSpace(r.Content)
	switch {
	case r.Name == "":
		return errs.NewValueError("name", "name cannot be empty.")
	case r.Summary == "":
		return errs.NewValueError("summary", "summary cannot be empty.")
	case r.Content == "":
		return errs.NewValueError("content", "content cannot be empty.")
	}
	return nil
}

// CreateCommentRequest posts a comment under the blog named by :id.
type CreateCommentRequest struct {
	BlogID  string `param:"id" json:"blogId" form:"blogId" validate:"required"`
	Content string `json:"content" form:"content" validate:"required"`
}

func (r *CreateCommentRequest) Validate() error {
	r.Content = strings.TrimSpace(r.Content)
	if r.Content == "" {
		return errs.NewValueError("content", "content cannot be empty.")
	}
	return nil
}

// Listing is the paged response of the list endpoints.
type Listing[T any] struct {
	Page  Page `json:"page"`
	Items []*T `json:"items"`
}
