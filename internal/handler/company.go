package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
	"github.com/deppfellow/directory/internal/server"
	"github.com/deppfellow/directory/internal/service"
)

// CompanyHandler serves the company directory.
type CompanyHandler struct {
	Handler
	companies *service.CompanyService
}

func NewCompanyHandler(s *server.Server, companies *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{Handler: NewHandler(s), companies: companies}
}

func (h *CompanyHandler) List(c echo.Context, _ *model.ListRequest) (model.Response[[]model.Company], error) {
	return h.companies.List(c.Request().Context(), query.Parse(c.QueryParams()))
}

func (h *CompanyHandler) Get(c echo.Context, req *model.IDRequest) (model.Response[*model.Company], error) {
	return h.companies.Get(c.Request().Context(), req.ID)
}

func (h *CompanyHandler) GetBySlug(c echo.Context, req *model.SlugRequest) (model.Response[*model.Company], error) {
	return h.companies.GetBySlug(c.Request().Context(), req.Slug)
}

func (h *CompanyHandler) Create(c echo.Context, req *model.CreateCompanyRequest) (model.Response[*model.Company], error) {
	return h.companies.Create(c.Request().Context(), req)
}

func (h *CompanyHandler) Update(c echo.Context, req *model.UpdateCompanyRequest) (model.Response[*model.Company], error) {
	return h.companies.Update(c.Request().Context(), req)
}

func (h *CompanyHandler) Delete(c echo.Context, req *model.IDRequest) error {
	return h.companies.Delete(c.Request().Context(), req.ID)
}
