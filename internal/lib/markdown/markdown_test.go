package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	out := New().Render("# Title\n\nSome **bold** text.")

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Title</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderStripsScripts(t *testing.T) {
	out := New().Render("hello <script>alert(1)</script>\n\n[x](javascript:alert(1))")

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "hello")
}

func TestRenderGFMTable(t *testing.T) {
	out := New().Render("| a | b |\n|---|---|\n| 1 | 2 |")

	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>1</td>")
}

func TestText2HTML(t *testing.T) {
	assert.Equal(t, "<p>a &lt;b&gt;</p><p>c</p>", Text2HTML("a <b>\n\n  \nc"))
	assert.Equal(t, "", Text2HTML(""))
}
