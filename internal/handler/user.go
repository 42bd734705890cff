package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
	"github.com/deppfellow/directory/internal/server"
	"github.com/deppfellow/directory/internal/service"
)

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{Handler: NewHandler(s), users: users}
}

func (h *UserHandler) List(c echo.Context, _ *model.ListRequest) (model.Response[[]model.User], error) {
	return h.users.List(c.Request().Context(), query.Parse(c.QueryParams()))
}

func (h *UserHandler) Get(c echo.Context, req *model.IDRequest) (model.Response[*model.User], error) {
	return h.users.Get(c.Request().Context(), req.ID)
}

func (h *UserHandler) Create(c echo.Context, req *model.CreateUserRequest) (model.Response[*model.User], error) {
	return h.users.Create(c.Request().Context(), req)
}

func (h *UserHandler) Update(c echo.Context, req *model.UpdateUserRequest) (model.Response[*model.User], error) {
	return h.users.Update(c.Request().Context(), req)
}

func (h *UserHandler) Delete(c echo.Context, req *model.IDRequest) error {
	return h.users.Delete(c.Request().Context(), req.ID)
}
