package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/directory/internal/server"
)

// Path parameters copied onto the transaction, keyed by attribute name.
// They let revenue traffic be sliced per company and fiscal year.
var tracedParams = map[string]string{
	"id":       "directory.entity_id",
	"year":     "directory.revenue_year",
	"industry": "directory.industry_type",
	"source":   "directory.revenue_source",
	"kind":     "directory.taxonomy_kind",
}

type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware returns tracing middleware for nrApp, which is nil
// when the agent is disabled.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{server: s, nrApp: nrApp}
}

func passThrough(next echo.HandlerFunc) echo.HandlerFunc { return next }

// NewRelicMiddleware starts one transaction per request.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing annotates the transaction with the matched route and its
// directory parameters. Only server side failures are noticed as errors;
// client errors are expected traffic for a public directory API.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return passThrough
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.route", c.Path())
			txn.AddAttribute("request.id", GetRequestID(c))
			for _, name := range c.ParamNames() {
				if attr, ok := tracedParams[name]; ok {
					txn.AddAttribute(attr, c.Param(name))
				}
			}

			err := next(c)
			status := c.Response().Status
			if err != nil {
				status = errorStatus(err)
				if status >= http.StatusInternalServerError {
					txn.NoticeError(nrpkgerrors.Wrap(err))
				}
			}
			txn.AddAttribute("http.status_code", status)

			return err
		}
	}
}
