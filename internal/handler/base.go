package handler

import (
	"errors"
	"net/http"
	"reflect"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/directory/internal/errs"
	"github.com/deppfellow/directory/internal/middleware"
	"github.com/deppfellow/directory/internal/model"
	"github.com/deppfellow/directory/internal/server"
	"github.com/deppfellow/directory/internal/sqlerr"
	"github.com/deppfellow/directory/internal/validation"
)

// Handler holds the dependencies shared by every concrete handler.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint. Req is a pointer to a request struct
// so it can be bound in place.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// HandlerFuncNoContent is a typed endpoint without a response body.
type HandlerFuncNoContent[Req validation.Validatable] func(c echo.Context, req Req) error

// ResponseHandler writes the result of a successful endpoint.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error
	Operation() string
	Annotate(txn *newrelic.Transaction, result any)
}

type paginated interface {
	Pagination() *model.PaginationMetadata
}

type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) Operation() string { return "json" }

// Annotate records the size of list pages so slow listings can be told
// apart from large ones.
func (h JSONResponseHandler) Annotate(txn *newrelic.Transaction, result any) {
	p, ok := result.(paginated)
	if !ok || p.Pagination() == nil {
		return
	}
	meta := p.Pagination()
	txn.AddAttribute("list.total", meta.Total)
	txn.AddAttribute("list.page", meta.Page)
	txn.AddAttribute("list.limit", meta.Limit)
}

type NoContentResponseHandler struct {
	status int
}

func (h NoContentResponseHandler) Handle(c echo.Context, result any) error {
	return c.NoContent(h.status)
}

func (h NoContentResponseHandler) Operation() string { return "no_content" }

func (h NoContentResponseHandler) Annotate(txn *newrelic.Transaction, result any) {}

// newRequest allocates an empty request of the type proto points to, so
// concurrent requests never share a bind target.
func newRequest[Req validation.Validatable](proto Req) Req {
	t := reflect.TypeOf(proto)
	if t == nil || t.Kind() != reflect.Pointer {
		return proto
	}
	return reflect.New(t.Elem()).Interface().(Req)
}

// failureLevel picks the log level of a failed endpoint: missing rows,
// broken references and conflicts are the caller's problem.
func failureLevel(err error) zerolog.Level {
	var httpErr *errs.HTTPError
	if errors.As(sqlerr.HandleError(err), &httpErr) && httpErr.Status < http.StatusInternalServerError {
		return zerolog.WarnLevel
	}
	return zerolog.ErrorLevel
}

// handleRequest binds and validates req, runs handler and writes its
// result. Errors are returned untouched to the global error handler, which
// also notices server failures on the transaction.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	txn := newrelic.FromContext(c.Request().Context())

	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.Operation()).
		Str("route", c.Path()).
		Logger()

	if err := validation.BindAndValidate(c, req); err != nil {
		logger.Warn().Err(err).Msg("rejected request")
		if txn != nil {
			txn.AddAttribute("validation.status", "failed")
		}
		return err
	}

	result, err := handler(c, req)
	elapsed := time.Since(start)

	if err != nil {
		logger.WithLevel(failureLevel(err)).
			Err(err).
			Dur("duration", elapsed).
			Msg("request failed")
		return err
	}

	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("handler.duration_ms", elapsed.Milliseconds())
		responseHandler.Annotate(txn, result)
	}

	logger.Debug().Dur("duration", elapsed).Msg("request handled")

	return responseHandler.Handle(c, result)
}

// Handle turns a typed endpoint into an echo.HandlerFunc answering with
// status and the JSON encoded result. req only names the request type;
// every call binds into a fresh value.
//
//	g.POST("", Handle(h.Handler, h.Create, http.StatusCreated, &model.CreateCompanyRequest{}))
func Handle[Req validation.Validatable, Res any](
	h Handler,
	handler HandlerFunc[Req, Res],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// HandleNoContent is Handle for endpoints answering without a body.
func HandleNoContent[Req validation.Validatable](
	h Handler,
	handler HandlerFuncNoContent[Req],
	status int,
	req Req,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, newRequest(req), func(c echo.Context, req Req) (any, error) {
			return nil, handler(c, req)
		}, NoContentResponseHandler{status: status})
	}
}
