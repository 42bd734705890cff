// Package router builds the Echo instance: the global middleware chain,
// the error handler and every route group.
package router

import (
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/deppfellow/directory/internal/handler"
	"github.com/deppfellow/directory/internal/middleware"
	"github.com/deppfellow/directory/internal/server"
)

// bodyLimit caps request bodies; a revenue table upsert is the largest.
const bodyLimit = "2M"

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Request ids and the New Relic transaction must exist before the
	// context logger is built from them.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
		echoMiddleware.BodyLimit(bodyLimit),
	)

	registerSystemRoutes(router, h)
	registerV1Routes(router.Group("/api/v1"), h)

	return router
}
