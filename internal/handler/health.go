package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/middleware"
	"github.com/deppfellow/directory/internal/server"
)

const defaultHealthCheckTimeout = 5 * time.Second

type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(s)}
}

// checkEnabled reports whether the named dependency is probed. Without an
// observability block every dependency is.
func (h *HealthHandler) checkEnabled(name string) bool {
	obs := h.server.Config.Observability
	return obs == nil || obs.HasCheck(name)
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return defaultHealthCheckTimeout
}

// CheckHealth pings the database and Redis. It answers 503 when the
// database is unreachable; Redis only degrades background jobs, so its
// failure is reported without failing the check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().Str("operation", "health_check").Logger()

	checks := map[string]any{}
	response := map[string]any{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout())
	defer cancel()

	healthy := true

	if h.checkEnabled("database") {
		dbStart := time.Now()
		if err := h.server.DB.Pool.Ping(ctx); err != nil {
			healthy = false
			checks["database"] = h.failedCheck("database", time.Since(dbStart), err)
			logger.Error().Err(err).Dur("response_time", time.Since(dbStart)).Msg("database health check failed")
		} else {
			checks["database"] = map[string]any{"status": "healthy", "response_time": time.Since(dbStart).String()}
		}
	}

	if h.server.Redis != nil && h.checkEnabled("redis") {
		redisStart := time.Now()
		if err := h.server.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = h.failedCheck("redis", time.Since(redisStart), err)
			logger.Error().Err(err).Dur("response_time", time.Since(redisStart)).Msg("redis health check failed")
		} else {
			checks["redis"] = map[string]any{"status": "healthy", "response_time": time.Since(redisStart).String()}
		}
	}

	if !healthy {
		response["status"] = "unhealthy"
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("health check failed")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}

// failedCheck builds the check entry of a failed dependency and records it
// as a New Relic custom event when the agent runs.
func (h *HealthHandler) failedCheck(check string, elapsed time.Duration, err error) map[string]any {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", map[string]any{
			"check_type":       check,
			"operation":        "health_check",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
	}

	return map[string]any{
		"status":        "unhealthy",
		"response_time": elapsed.String(),
		"error":         err.Error(),
	}
}
