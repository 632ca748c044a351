package handler

import (
	"github.com/deppfellow/awesome-blog/internal/middleware"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/service"
	"github.com/labstack/echo/v4"
)

// CommentHandler serves the comment API.
type CommentHandler struct {
	Handler
	comments *service.CommentService
}

func NewCommentHandler(s *server.Server, comments *service.CommentService) *CommentHandler {
	return &CommentHandler{
		Handler:  NewHandler(s),
		comments: comments,
	}
}

func (h *CommentHandler) ListComments(c echo.Context, req *model.PageQuery) (*model.Listing[model.Comment], error) {
	return h.comments.List(c.Request().Context(), req.Index())
}

// CreateComment posts a comment as the signed-in user.
func (h *CommentHandler) CreateComment(c echo.Context, req *model.CreateCommentRequest) (*model.Comment, error) {
	return h.comments.Create(c.Request().Context(), middleware.GetUser(c), req)
}

// DeleteComment removes a comment and answers with its id.
func (h *CommentHandler) DeleteComment(c echo.Context, req *model.IDParam) (*DeletedResponse, error) {
	if err := h.comments.Delete(c.Request().Context(), middleware.GetUser(c), req.ID); err != nil {
		return nil, err
	}
	return &DeletedResponse{ID: req.ID}, nil
}
