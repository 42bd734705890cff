package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
	"github.com/deppfellow/directory/internal/server"
	"github.com/deppfellow/directory/internal/service"
)

type PortfolioHandler struct {
	Handler
	portfolios *service.PortfolioService
}

func NewPortfolioHandler(s *server.Server, portfolios *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{Handler: NewHandler(s), portfolios: portfolios}
}

func (h *PortfolioHandler) List(c echo.Context, _ *model.ListRequest) (model.Response[[]model.Portfolio], error) {
	return h.portfolios.List(c.Request().Context(), query.Parse(c.QueryParams()))
}

func (h *PortfolioHandler) Get(c echo.Context, req *model.IDRequest) (model.Response[*model.Portfolio], error) {
	return h.portfolios.Get(c.Request().Context(), req.ID)
}

func (h *PortfolioHandler) Create(c echo.Context, req *model.CreatePortfolioRequest) (model.Response[*model.Portfolio], error) {
	return h.portfolios.Create(c.Request().Context(), req)
}

func (h *PortfolioHandler) Update(c echo.Context, req *model.UpdatePortfolioRequest) (model.Response[*model.Portfolio], error) {
	return h.portfolios.Update(c.Request().Context(), req)
}

func (h *PortfolioHandler) Delete(c echo.Context, req *model.IDRequest) error {
	return h.portfolios.Delete(c.Request().Context(), req.ID)
}
