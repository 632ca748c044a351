package templates

import (
	"bytes"
	"testing"
	"time"

	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, name string, view View) string {
	t.Helper()
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, view, nil))
	return buf.String()
}

func TestRenderBlogsPage(t *testing.T) {
	listing := &model.Listing[model.Blog]{
		Page: model.NewPage(11, 1, 10),
		Items: []*model.Blog{
			{ID: "b1", Name: "First <post>", Summary: "hello", UserName: "Root", CreatedAt: time.Now()},
		},
	}

	out := render(t, PageBlogs, View{Data: listing})

	assert.Contains(t, out, `<a href="/blog/b1">First &lt;post&gt;</a>`)
	assert.Contains(t, out, `href="/?page=2"`)
	assert.NotContains(t, out, "Previous")
	assert.Contains(t, out, `href="/signin"`)
}

func TestRenderBlogPageTrustsRenderedContent(t *testing.T) {
	blogPage := struct {
		Blog     *model.Blog
		Comments []*model.Comment
	}{
		Blog: &model.Blog{ID: "b1", Name: "Post", HTMLContent: "<h1>Title</h1>"},
		Comments: []*model.Comment{
			{UserName: "alice", HTMLContent: "<p>nice</p>"},
		},
	}

	anonymous := render(t, PageBlog, View{Data: blogPage})
	assert.Contains(t, anonymous, "<h1>Title</h1>")
	assert.Contains(t, anonymous, "<p>nice</p>")
	assert.Contains(t, anonymous, "<title>Post - Awesome Blog</title>")
	assert.NotContains(t, anonymous, "comment-form")

	signedIn := render(t, PageBlog, View{User: &model.User{Name: "alice"}, Data: blogPage})
	assert.Contains(t, signedIn, `action="/api/blogs/b1/comments"`)
	assert.Contains(t, signedIn, `href="/signout"`)
}

func TestRenderStaticPages(t *testing.T) {
	assert.Contains(t, render(t, PageRegister, View{}), `action="/api/users"`)
	assert.Contains(t, render(t, PageSignin, View{}), `action="/api/authenticate"`)
}

func TestRenderUsersPage(t *testing.T) {
	listing := &model.Listing[model.User]{
		Page:  model.NewPage(0, 1, 10),
		Items: nil,
	}
	assert.Contains(t, render(t, PageUsers, View{Data: listing}), "No users yet.")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	err = r.Render(&bytes.Buffer{}, "missing.html", View{}, nil)
	assert.Error(t, err)
}
