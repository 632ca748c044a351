package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/awesome-blog/internal/middleware"
	"github.com/deppfellow/awesome-blog/internal/server"
	"github.com/labstack/echo/v4"
)

// Probe checks that one dependency is reachable.
type Probe func(ctx context.Context) error

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	probes map[string]Probe
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	probes := make(map[string]Probe)
	if s.DB != nil {
		probes["database"] = func(ctx context.Context) error {
			return s.DB.Pool.Ping(ctx)
		}
	}
	if s.Redis != nil {
		probes["redis"] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}
	return newHealthHandler(s, probes)
}

func newHealthHandler(s *server.Server, probes map[string]Probe) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		probes:  probes,
	}
}

func (h *HealthHandler) recordFailure(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}

// CheckHealth runs the configured checks. It answers 200 when all of them
// pass and 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	cfg := h.server.Config.Observability.HealthChecks

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true

	if cfg.Enabled {
		for _, name := range cfg.Checks {
			probe, ok := h.probes[name]
			if !ok {
				checks[name] = map[string]interface{}{"status": "unhealthy", "error": "not configured"}
				isHealthy = false
				continue
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
			checkStart := time.Now()
			err := probe(ctx)
			elapsed := time.Since(checkStart)
			cancel()

			if err != nil {
				isHealthy = false
				checks[name] = map[string]interface{}{
					"status":        "unhealthy",
					"response_time": elapsed.String(),
					"error":         err.Error(),
				}

				logger.Error().
					Err(err).
					Str("check", name).
					Dur("response_time", elapsed).
					Msg("health check failed")

				h.recordFailure(map[string]interface{}{
					"check_type":       name,
					"operation":        "health_check",
					"error_type":       name + "_unhealthy",
					"response_time_ms": elapsed.Milliseconds(),
					"error_message":    err.Error(),
				})
				continue
			}

			checks[name] = map[string]interface{}{
				"status":        "healthy",
				"response_time": elapsed.String(),
			}
			logger.Debug().
				Str("check", name).
				Dur("response_time", elapsed).
				Msg("health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")

		h.recordFailure(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}
