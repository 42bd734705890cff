// Package repository handles all interactions with the database.
//
// Statements are built with squirrel (Dollar placeholders) and rows are
// scanned into model structs by their db tags. Missing rows are returned
// as pgx.ErrNoRows wrapped with a "table:<name>:" prefix so sqlerr can
// name the entity in the 404 it produces.
package repository

import (
	"github.com/deppfellow/directory/internal/database"
	"github.com/deppfellow/directory/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Industries *IndustryRepository
	Companies  *CompanyRepository
	Freelances *FreelanceRepository
	Portfolios *PortfolioRepository
	Standards  *StandardRepository
	Users      *UserRepository
	Revenue    *RevenueRepository
}

// NewRepositories wires every repository to the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return newRepositories(s.DB.Pool)
}

func newRepositories(db database.Pool) *Repositories {
	return &Repositories{
		Industries: NewIndustryRepository(db),
		Companies:  NewCompanyRepository(db),
		Freelances: NewFreelanceRepository(db),
		Portfolios: NewPortfolioRepository(db),
		Standards:  NewStandardRepository(db),
		Users:      NewUserRepository(db),
		Revenue:    NewRevenueRepository(db),
	}
}
