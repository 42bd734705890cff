package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
	"github.com/deppfellow/directory/internal/server"
	"github.com/deppfellow/directory/internal/service"
)

// IndustryHandler serves industry types and the revenue taxonomies scoped
// to them.
type IndustryHandler struct {
	Handler
	industries *service.IndustryService
}

func NewIndustryHandler(s *server.Server, industries *service.IndustryService) *IndustryHandler {
	return &IndustryHandler{Handler: NewHandler(s), industries: industries}
}

func (h *IndustryHandler) List(c echo.Context, _ *model.ListRequest) (model.Response[[]model.IndustryType], error) {
	return h.industries.List(c.Request().Context(), query.Parse(c.QueryParams()))
}

func (h *IndustryHandler) Get(c echo.Context, req *model.SlugRequest) (model.Response[*model.IndustryType], error) {
	return h.industries.Get(c.Request().Context(), req.Slug)
}

func (h *IndustryHandler) Create(c echo.Context, req *model.CreateIndustryTypeRequest) (model.Response[*model.IndustryType], error) {
	return h.industries.Create(c.Request().Context(), req)
}

func (h *IndustryHandler) Update(c echo.Context, req *model.UpdateIndustryTypeRequest) (model.Response[*model.IndustryType], error) {
	return h.industries.Update(c.Request().Context(), req)
}

func (h *IndustryHandler) Delete(c echo.Context, req *model.SlugRequest) error {
	return h.industries.Delete(c.Request().Context(), req.Slug)
}

func (h *IndustryHandler) ListItems(c echo.Context, req *model.ListTaxonomyRequest) (model.Response[[]model.TaxonomyItem], error) {
	return h.industries.ListItems(c.Request().Context(), req, query.Parse(c.QueryParams()))
}

func (h *IndustryHandler) GetItem(c echo.Context, req *model.TaxonomyItemRequest) (model.Response[*model.TaxonomyItem], error) {
	return h.industries.GetItem(c.Request().Context(), req)
}

func (h *IndustryHandler) CreateItem(c echo.Context, req *model.CreateTaxonomyItemRequest) (model.Response[*model.TaxonomyItem], error) {
	return h.industries.CreateItem(c.Request().Context(), req)
}

func (h *IndustryHandler) UpdateItem(c echo.Context, req *model.UpdateTaxonomyItemRequest) (model.Response[*model.TaxonomyItem], error) {
	return h.industries.UpdateItem(c.Request().Context(), req)
}

func (h *IndustryHandler) DeleteItem(c echo.Context, req *model.TaxonomyItemRequest) error {
	return h.industries.DeleteItem(c.Request().Context(), req)
}
