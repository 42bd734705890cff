package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/database"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type CompanyRepository struct {
	companies *table[model.Company]
}

func NewCompanyRepository(db database.Pool) *CompanyRepository {
	return &CompanyRepository{
		companies: &table[model.Company]{
			db:   db,
			name: "companies",
			columns: []string{
				"id", "slug", "name", "description", "industry_type_slug", "country", "city",
				"website", "email", "phone", "logo_url", "founded_year", "employee_count",
				"verified", "created_at", "updated_at",
			},
			fields: query.Columns{
				"id":               "id",
				"slug":             "slug",
				"name":             "name",
				"description":      "description",
				"industryTypeSlug": "industry_type_slug",
				"country":          "country",
				"city":             "city",
				"foundedYear":      "founded_year",
				"employeeCount":    "employee_count",
				"verified":         "verified",
				"createdAt":        "created_at",
				"updatedAt":        "updated_at",
			},
			searchable:  []string{"name", "description", "city"},
			defaultSort: query.Sort{Field: "createdAt", Direction: query.Desc},
			tieBreaker:  "id",
		},
	}
}

func (r *CompanyRepository) List(ctx context.Context, d query.Descriptor) ([]model.Company, int64, error) {
	return r.companies.list(ctx, d, nil)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error) {
	return r.companies.get(ctx, sq.Eq{"id": id})
}

func (r *CompanyRepository) GetBySlug(ctx context.Context, slug string) (*model.Company, error) {
	return r.companies.get(ctx, sq.Eq{"slug": slug})
}

func (r *CompanyRepository) Create(ctx context.Context, slug string, req *model.CreateCompanyRequest) (*model.Company, error) {
	return r.companies.insert(ctx, map[string]any{
		"slug":               slug,
		"name":               req.Name,
		"description":        req.Description,
		"industry_type_slug": req.IndustryTypeSlug,
		"country":            req.Country,
		"city":               req.City,
		"website":            req.Website,
		"email":              req.Email,
		"phone":              req.Phone,
		"logo_url":           req.LogoURL,
		"founded_year":       req.FoundedYear,
		"employee_count":     req.EmployeeCount,
		"verified":           req.Verified,
	})
}

func (r *CompanyRepository) Update(ctx context.Context, req *model.UpdateCompanyRequest) (*model.Company, error) {
	set := map[string]any{}
	setIf(set, "slug", req.Slug)
	setIf(set, "name", req.Name)
	setIf(set, "description", req.Description)
	setIf(set, "industry_type_slug", req.IndustryTypeSlug)
	setIf(set, "country", req.Country)
	setIf(set, "city", req.City)
	setIf(set, "website", req.Website)
	setIf(set, "email", req.Email)
	setIf(set, "phone", req.Phone)
	setIf(set, "logo_url", req.LogoURL)
	setIf(set, "founded_year", req.FoundedYear)
	setIf(set, "employee_count", req.EmployeeCount)
	setIf(set, "verified", req.Verified)
	return r.companies.update(ctx, sq.Eq{"id": req.ID}, set)
}

func (r *CompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.companies.delete(ctx, sq.Eq{"id": id})
}
