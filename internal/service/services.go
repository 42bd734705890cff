package service

import (
	"github.com/deppfellow/directory/internal/lib/job"
	"github.com/deppfellow/directory/internal/repository"
	"github.com/deppfellow/directory/internal/server"
)

type Services struct {
	Industries *IndustryService
	Companies  *CompanyService
	Freelances *FreelanceService
	Portfolios *PortfolioService
	Standards  *StandardService
	Users      *UserService
	Revenue    *RevenueService
	Job        *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Industries: NewIndustryService(repos.Industries),
		Companies:  NewCompanyService(repos.Companies),
		Freelances: NewFreelanceService(repos.Freelances),
		Portfolios: NewPortfolioService(repos.Portfolios),
		Standards:  NewStandardService(repos.Standards),
		Users:      NewUserService(repos.Users, s.Job),
		Revenue:    NewRevenueService(repos.Revenue, s.Job),
		Job:        s.Job,
	}, nil
}
