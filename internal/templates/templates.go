// Package templates holds the server-rendered pages of the site.
//
// Every page is a file under html/ that fills in the blocks of base.html.
// Renderer implements echo.Renderer, so handlers render pages through
// c.Render(status, name, View{...}).
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/deppfellow/awesome-blog/internal/model"
	"github.com/labstack/echo/v4"
)

//go:embed html/*.html
var files embed.FS

// Page template names.
const (
	PageBlogs    = "blogs.html"
	PageBlog     = "blog.html"
	PageUsers    = "users.html"
	PageRegister = "register.html"
	PageSignin   = "signin.html"
)

var pages = []string{PageBlogs, PageBlog, PageUsers, PageRegister, PageSignin}

// View is the value every page is executed with.
type View struct {
	// User is the signed-in user, nil for anonymous visitors.
	User *model.User
	Data any
}

var funcs = template.FuncMap{
	// safe marks content that was already sanitized as HTML.
	"safe": func(s string) template.HTML { return template.HTML(s) },
	"datetime": func(t time.Time) string {
		return t.Local().Format("2006-01-02 15:04")
	},
	"add": func(a, b int64) int64 { return a + b },
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses base.html once and every page on top of its own copy of it.
func New() (*Renderer, error) {
	base, err := template.New("base.html").Funcs(funcs).ParseFS(files, "html/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		page, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base template for %s: %w", name, err)
		}
		if _, err := page.ParseFS(files, "html/"+name); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		r.pages[name] = page
	}
	return r, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	return page.ExecuteTemplate(w, "base.html", data)
}
