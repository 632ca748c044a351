// Package router builds the echo instance: global middleware, the error
// handler, the page renderer and every route group.
package router

import (
	"fmt"

	"github.com/deppfellow/awesome-blog/internal/handler"
	"github.com/deppfellow/awesome-blog/internal/middleware"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/deppfellow/awesome-blog/internal/templates"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers, m *middleware.Middlewares) (*echo.Echo, error) {
	renderer, err := templates.New()
	if err != nil {
		return nil, fmt.Errorf("loading page templates: %w", err)
	}

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Renderer = renderer
	router.HTTPErrorHandler = m.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		m.Tracing.NewRelicMiddleware(),
		m.Auth.LoadUser,
		m.ContextEnhancer.EnhanceContext(),
		m.Tracing.EnhanceTracing(),
		m.Global.RequestLogger(),
		m.Global.Recover(),
		m.Global.Secure(),
		m.Global.CORS(),
	)

	registerSystemRoutes(router, s, h)
	registerPageRoutes(router, h)
	registerAPIRoutes(router, h, m)

	return router, nil
}
