package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API docs UI from the static directory. The page
// itself loads /static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI answers GET /docs. Browsers revalidate on every load; an
// unchanged page is answered with 304 through its ETag.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	path := filepath.Join(h.server.Config.Server.StaticDir, "openapi.html")

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("docs page unavailable: %w", err)
	}

	etag := fmt.Sprintf(`"%x-%x"`, info.ModTime().UnixNano(), info.Size())
	header := c.Response().Header()
	header.Set(echo.HeaderCacheControl, "no-cache")
	header.Set("ETag", etag)

	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}

	page, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("docs page unavailable: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, page)
}
