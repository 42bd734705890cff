package handler

import (
	"github.com/deppfellow/directory/internal/server"
	"github.com/deppfellow/directory/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health     *HealthHandler
	Industries *IndustryHandler
	Companies  *CompanyHandler
	Freelances *FreelanceHandler
	Portfolios *PortfolioHandler
	Standards  *StandardHandler
	Users      *UserHandler
	Revenue    *RevenueHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		Industries: NewIndustryHandler(s, services.Industries),
		Companies:  NewCompanyHandler(s, services.Companies),
		Freelances: NewFreelanceHandler(s, services.Freelances),
		Portfolios: NewPortfolioHandler(s, services.Portfolios),
		Standards:  NewStandardHandler(s, services.Standards),
		Users:      NewUserHandler(s, services.Users),
		Revenue:    NewRevenueHandler(s, services.Revenue),
	}
}
