package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/handler"
)

// registerSystemRoutes registers the endpoints outside the versioned API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
}
