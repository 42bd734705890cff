// Package middleware holds the global Echo middleware: request ids,
// request-scoped logging, New Relic tracing, CORS, secure headers, panic
// recovery and the global error handler.
package middleware
