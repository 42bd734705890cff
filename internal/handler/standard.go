package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
	"github.com/deppfellow/directory/internal/server"
	"github.com/deppfellow/directory/internal/service"
)

type StandardHandler struct {
	Handler
	standards *service.StandardService
}

func NewStandardHandler(s *server.Server, standards *service.StandardService) *StandardHandler {
	return &StandardHandler{Handler: NewHandler(s), standards: standards}
}

func (h *StandardHandler) List(c echo.Context, _ *model.ListRequest) (model.Response[[]model.Standard], error) {
	return h.standards.List(c.Request().Context(), query.Parse(c.QueryParams()))
}

func (h *StandardHandler) Get(c echo.Context, req *model.IDRequest) (model.Response[*model.Standard], error) {
	return h.standards.Get(c.Request().Context(), req.ID)
}

func (h *StandardHandler) Create(c echo.Context, req *model.CreateStandardRequest) (model.Response[*model.Standard], error) {
	return h.standards.Create(c.Request().Context(), req)
}

func (h *StandardHandler) Update(c echo.Context, req *model.UpdateStandardRequest) (model.Response[*model.Standard], error) {
	return h.standards.Update(c.Request().Context(), req)
}

func (h *StandardHandler) Delete(c echo.Context, req *model.IDRequest) error {
	return h.standards.Delete(c.Request().Context(), req.ID)
}
