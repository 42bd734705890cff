package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
	"github.com/deppfellow/directory/internal/server"
	"github.com/deppfellow/directory/internal/service"
)

// RevenueHandler serves the revenue tables of a company and the flat list
// of stored rows.
type RevenueHandler struct {
	Handler
	revenue *service.RevenueService
}

func NewRevenueHandler(s *server.Server, revenue *service.RevenueService) *RevenueHandler {
	return &RevenueHandler{Handler: NewHandler(s), revenue: revenue}
}

func (h *RevenueHandler) List(c echo.Context, _ *model.ListRequest) (model.Response[[]model.RevenueStream], error) {
	return h.revenue.List(c.Request().Context(), query.Parse(c.QueryParams()))
}

func (h *RevenueHandler) GetTable(c echo.Context, req *model.RevenueTableRequest) (model.Response[*model.RevenueTable], error) {
	return h.revenue.GetTable(c.Request().Context(), req)
}

// UpsertTable replaces the whole table addressed by the path with the rows
// of the body. An empty rows array clears it.
func (h *RevenueHandler) UpsertTable(c echo.Context, req *model.UpsertRevenueTableRequest) (model.Response[*model.RevenueTable], error) {
	return h.revenue.UpsertTable(c.Request().Context(), req)
}

func (h *RevenueHandler) ClearTable(c echo.Context, req *model.ClearRevenueTableRequest) (model.Response[model.ClearResult], error) {
	return h.revenue.ClearTable(c.Request().Context(), req)
}

func (h *RevenueHandler) AvailableSources(c echo.Context, req *model.RevenueYearRequest) (model.Response[[]model.SourceSummary], error) {
	return h.revenue.AvailableSources(c.Request().Context(), req)
}

func (h *RevenueHandler) YearlyStats(c echo.Context, req *model.RevenueYearRequest) (model.Response[*model.YearlyStats], error) {
	return h.revenue.YearlyStats(c.Request().Context(), req)
}
