package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
	"github.com/deppfellow/directory/internal/server"
	"github.com/deppfellow/directory/internal/service"
)

type FreelanceHandler struct {
	Handler
	freelances *service.FreelanceService
}

func NewFreelanceHandler(s *server.Server, freelances *service.FreelanceService) *FreelanceHandler {
	return &FreelanceHandler{Handler: NewHandler(s), freelances: freelances}
}

func (h *FreelanceHandler) List(c echo.Context, _ *model.ListRequest) (model.Response[[]model.Freelance], error) {
	return h.freelances.List(c.Request().Context(), query.Parse(c.QueryParams()))
}

func (h *FreelanceHandler) Get(c echo.Context, req *model.IDRequest) (model.Response[*model.Freelance], error) {
	return h.freelances.Get(c.Request().Context(), req.ID)
}

func (h *FreelanceHandler) GetBySlug(c echo.Context, req *model.SlugRequest) (model.Response[*model.Freelance], error) {
	return h.freelances.GetBySlug(c.Request().Context(), req.Slug)
}

func (h *FreelanceHandler) Create(c echo.Context, req *model.CreateFreelanceRequest) (model.Response[*model.Freelance], error) {
	return h.freelances.Create(c.Request().Context(), req)
}

func (h *FreelanceHandler) Update(c echo.Context, req *model.UpdateFreelanceRequest) (model.Response[*model.Freelance], error) {
	return h.freelances.Update(c.Request().Context(), req)
}

func (h *FreelanceHandler) Delete(c echo.Context, req *model.IDRequest) error {
	return h.freelances.Delete(c.Request().Context(), req.ID)
}
