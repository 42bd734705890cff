package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/directory/internal/handler"
	"github.com/deppfellow/directory/internal/model"
)

func registerV1Routes(v1 *echo.Group, h *handler.Handlers) {
	registerIndustryRoutes(v1.Group("/industry-types"), h.Industries)
	registerCompanyRoutes(v1.Group("/companies"), h.Companies, h.Revenue)
	registerFreelanceRoutes(v1.Group("/freelances"), h.Freelances)
	registerPortfolioRoutes(v1.Group("/portfolios"), h.Portfolios)
	registerStandardRoutes(v1.Group("/standards"), h.Standards)
	registerUserRoutes(v1.Group("/users"), h.Users)

	v1.GET("/revenue-streams", handler.Handle(h.Revenue.Handler, h.Revenue.List, http.StatusOK, &model.ListRequest{}))
}

func registerIndustryRoutes(g *echo.Group, h *handler.IndustryHandler) {
	g.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &model.ListRequest{}))
	g.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &model.CreateIndustryTypeRequest{}))
	g.GET("/:slug", handler.Handle(h.Handler, h.Get, http.StatusOK, &model.SlugRequest{}))
	g.PATCH("/:slug", handler.Handle(h.Handler, h.Update, http.StatusOK, &model.UpdateIndustryTypeRequest{}))
	g.DELETE("/:slug", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &model.SlugRequest{}))

	items := g.Group("/:industry/:kind")
	items.GET("", handler.Handle(h.Handler, h.ListItems, http.StatusOK, &model.ListTaxonomyRequest{}))
	items.POST("", handler.Handle(h.Handler, h.CreateItem, http.StatusCreated, &model.CreateTaxonomyItemRequest{}))
	items.GET("/:slug", handler.Handle(h.Handler, h.GetItem, http.StatusOK, &model.TaxonomyItemRequest{}))
	items.PATCH("/:slug", handler.Handle(h.Handler, h.UpdateItem, http.StatusOK, &model.UpdateTaxonomyItemRequest{}))
	items.DELETE("/:slug", handler.HandleNoContent(h.Handler, h.DeleteItem, http.StatusNoContent, &model.TaxonomyItemRequest{}))
}

func registerCompanyRoutes(g *echo.Group, h *handler.CompanyHandler, revenue *handler.RevenueHandler) {
	g.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &model.ListRequest{}))
	g.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &model.CreateCompanyRequest{}))
	g.GET("/slug/:slug", handler.Handle(h.Handler, h.GetBySlug, http.StatusOK, &model.SlugRequest{}))
	g.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &model.IDRequest{}))
	g.PATCH("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &model.UpdateCompanyRequest{}))
	g.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &model.IDRequest{}))

	registerRevenueRoutes(g.Group("/:id/revenue/:year"), revenue)
}

// registerRevenueRoutes registers the tables of one company and year. The
// static "sources" and "stats" segments take precedence over the
// :industry parameter.
func registerRevenueRoutes(g *echo.Group, h *handler.RevenueHandler) {
	g.GET("/sources", handler.Handle(h.Handler, h.AvailableSources, http.StatusOK, &model.RevenueYearRequest{}))
	g.DELETE("/sources/:source", handler.Handle(h.Handler, h.ClearTable, http.StatusOK, &model.ClearRevenueTableRequest{}))
	g.GET("/stats", handler.Handle(h.Handler, h.YearlyStats, http.StatusOK, &model.RevenueYearRequest{}))
	g.GET("/:industry/:source", handler.Handle(h.Handler, h.GetTable, http.StatusOK, &model.RevenueTableRequest{}))
	g.PUT("/:industry/:source", handler.Handle(h.Handler, h.UpsertTable, http.StatusOK, &model.UpsertRevenueTableRequest{}))
}

func registerFreelanceRoutes(g *echo.Group, h *handler.FreelanceHandler) {
	g.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &model.ListRequest{}))
	g.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &model.CreateFreelanceRequest{}))
	g.GET("/slug/:slug", handler.Handle(h.Handler, h.GetBySlug, http.StatusOK, &model.SlugRequest{}))
	g.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &model.IDRequest{}))
	g.PATCH("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &model.UpdateFreelanceRequest{}))
	g.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &model.IDRequest{}))
}

func registerPortfolioRoutes(g *echo.Group, h *handler.PortfolioHandler) {
	g.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &model.ListRequest{}))
	g.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &model.CreatePortfolioRequest{}))
	g.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &model.IDRequest{}))
	g.PATCH("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &model.UpdatePortfolioRequest{}))
	g.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &model.IDRequest{}))
}

func registerStandardRoutes(g *echo.Group, h *handler.StandardHandler) {
	g.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &model.ListRequest{}))
	g.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &model.CreateStandardRequest{}))
	g.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &model.IDRequest{}))
	g.PATCH("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &model.UpdateStandardRequest{}))
	g.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &model.IDRequest{}))
}

func registerUserRoutes(g *echo.Group, h *handler.UserHandler) {
	g.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, &model.ListRequest{}))
	g.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, &model.CreateUserRequest{}))
	g.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, &model.IDRequest{}))
	g.PATCH("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, &model.UpdateUserRequest{}))
	g.DELETE("/:id", handler.HandleNoContent(h.Handler, h.Delete, http.StatusNoContent, &model.IDRequest{}))
}
