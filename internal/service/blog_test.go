package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/awesome-blog/internal/lib/markdown"
	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin  = &model.User{ID: "admin", Name: "Admin", Admin: true}
	reader = &model.User{ID: "reader", Name: "Reader"}
)

func newBlogFixture() (*BlogService, *CommentService, *memBlogs, *memComments) {
	blogs, comments := newMemBlogs(), newMemComments()
	return NewBlogService(blogs, comments, markdown.New()), NewCommentService(comments, blogs), blogs, comments
}

func blogRequest() *model.BlogRequest {
	return &model.BlogRequest{Name: "Hello", Summary: "First post", Content: "# Hi\n\nWelcome"}
}

func TestCreateBlogRequiresAdmin(t *testing.T) {
	blogSvc, _, blogs, _ := newBlogFixture()

	_, err := blogSvc.Create(context.Background(), reader, blogRequest())
	assert.Equal(t, http.StatusForbidden, requireHTTPError(t, err).Status)

	_, err = blogSvc.Create(context.Background(), nil, blogRequest())
	assert.Equal(t, http.StatusForbidden, requireHTTPError(t, err).Status)

	assert.Empty(t, blogs.byID)
}

func TestCreateAndUpdateBlog(t *testing.T) {
	blogSvc, _, blogs, _ := newBlogFixture()

	blog, err := blogSvc.Create(context.Background(), admin, blogRequest())
	require.NoError(t, err)
	assert.Equal(t, "admin", blog.UserID)
	assert.Equal(t, "Admin", blog.UserName)

	req := blogRequest()
	req.ID = blog.ID
	req.Name = "Renamed"
	updated, err := blogSvc.Update(context.Background(), admin, req)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 1, blogs.updated)
}

func TestUpdateMissingBlog(t *testing.T) {
	blogSvc, _, _, _ := newBlogFixture()

	req := blogRequest()
	req.ID = "missing"
	_, err := blogSvc.Update(context.Background(), admin, req)
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestGetForDisplayRendersContent(t *testing.T) {
	blogSvc, commentSvc, _, _ := newBlogFixture()

	blog, err := blogSvc.Create(context.Background(), admin, blogRequest())
	require.NoError(t, err)
	_, err = commentSvc.Create(context.Background(), reader, &model.CreateCommentRequest{BlogID: blog.ID, Content: "nice <b>post</b>"})
	require.NoError(t, err)

	page, err := blogSvc.GetForDisplay(context.Background(), blog.ID)
	require.NoError(t, err)
	assert.Contains(t, page.Blog.HTMLContent, "Hi</h1>")
	require.Len(t, page.Comments, 1)
	assert.Equal(t, "<p>nice &lt;b&gt;post&lt;/b&gt;</p>", page.Comments[0].HTMLContent)
}

func TestDeleteBlog(t *testing.T) {
	blogSvc, _, blogs, _ := newBlogFixture()

	blog, err := blogSvc.Create(context.Background(), admin, blogRequest())
	require.NoError(t, err)

	assert.Error(t, blogSvc.Delete(context.Background(), reader, blog.ID))
	require.NoError(t, blogSvc.Delete(context.Background(), admin, blog.ID))
	assert.Empty(t, blogs.byID)
}

func TestCreateCommentNeedsUserAndBlog(t *testing.T) {
	_, commentSvc, _, _ := newBlogFixture()

	_, err := commentSvc.Create(context.Background(), nil, &model.CreateCommentRequest{BlogID: "b", Content: "hi"})
	assert.Equal(t, http.StatusForbidden, requireHTTPError(t, err).Status)

	_, err = commentSvc.Create(context.Background(), reader, &model.CreateCommentRequest{BlogID: "missing", Content: "hi"})
	assert.True(t, errors.Is(err, pgx.ErrNoRows))
}

func TestDeleteCommentRequiresAdmin(t *testing.T) {
	blogSvc, commentSvc, _, comments := newBlogFixture()

	blog, err := blogSvc.Create(context.Background(), admin, blogRequest())
	require.NoError(t, err)
	comment, err := commentSvc.Create(context.Background(), reader, &model.CreateCommentRequest{BlogID: blog.ID, Content: "hi"})
	require.NoError(t, err)

	assert.Error(t, commentSvc.Delete(context.Background(), reader, comment.ID))
	require.NoError(t, commentSvc.Delete(context.Background(), admin, comment.ID))
	assert.Empty(t, comments.byID)
}
