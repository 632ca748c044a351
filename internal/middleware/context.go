package middleware

import (
	"github.com/deppfellow/awesome-blog/internal/logger"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// LoggerKey is the echo context key of the request scoped logger.
const LoggerKey = "logger"

// ContextEnhancer builds the request scoped logger.
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext gives every request its own logger. Each line it writes
// carries the request id, method, route and client ip, the trace ids when
// New Relic is on, and the user when LoadUser found one.
//
// Handlers reach it with GetLogger(c); code that only holds the request
// context.Context uses zerolog.Ctx(ctx).
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			fields := ce.server.Logger.With().
				Str(RequestIDKey, GetRequestID(c)).
				Str("method", req.Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP())

			if user := GetUser(c); user != nil {
				fields = fields.Str("user_id", user.ID).Bool("admin", user.Admin)
			}

			reqLogger := fields.Logger()
			if txn := newrelic.FromContext(req.Context()); txn != nil {
				reqLogger = logger.WithTraceContext(reqLogger, txn)
			}

			c.Set(LoggerKey, &reqLogger)
			c.SetRequest(req.WithContext(reqLogger.WithContext(req.Context())))

			return next(c)
		}
	}
}

// GetUserID returns the id of the signed-in user, or "".
func GetUserID(c echo.Context) string {
	if user := GetUser(c); user != nil {
		return user.ID
	}
	return ""
}

// GetLogger returns the request scoped logger, or a no-op logger when
// EnhanceContext did not run.
func GetLogger(c echo.Context) *zerolog.Logger {
	if l, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return l
	}
	nop := zerolog.Nop()
	return &nop
}
