package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/directory/internal/database"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type FreelanceRepository struct {
	freelances *table[model.Freelance]
}

func NewFreelanceRepository(db database.Pool) *FreelanceRepository {
	return &FreelanceRepository{
		freelances: &table[model.Freelance]{
			db:   db,
			name: "freelances",
			columns: []string{
				"id", "slug", "full_name", "email", "headline", "bio", "industry_type_slug",
				"country", "city", "website", "hourly_rate", "available", "created_at", "updated_at",
			},
			fields: query.Columns{
				"id":               "id",
				"slug":             "slug",
				"fullName":         "full_name",
				"headline":         "headline",
				"bio":              "bio",
				"industryTypeSlug": "industry_type_slug",
				"country":          "country",
				"city":             "city",
				"hourlyRate":       "hourly_rate",
				"available":        "available",
				"createdAt":        "created_at",
				"updatedAt":        "updated_at",
			},
			searchable:  []string{"fullName", "headline", "bio"},
			defaultSort: query.Sort{Field: "createdAt", Direction: query.Desc},
			tieBreaker:  "id",
		},
	}
}

func (r *FreelanceRepository) List(ctx context.Context, d query.Descriptor) ([]model.Freelance, int64, error) {
	return r.freelances.list(ctx, d, nil)
}

func (r *FreelanceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Freelance, error) {
	return r.freelances.get(ctx, sq.Eq{"id": id})
}

func (r *FreelanceRepository) GetBySlug(ctx context.Context, slug string) (*model.Freelance, error) {
	return r.freelances.get(ctx, sq.Eq{"slug": slug})
}

func (r *FreelanceRepository) Create(ctx context.Context, slug string, req *model.CreateFreelanceRequest) (*model.Freelance, error) {
	values := map[string]any{
		"slug":               slug,
		"full_name":          req.FullName,
		"email":              req.Email,
		"headline":           req.Headline,
		"bio":                req.Bio,
		"industry_type_slug": req.IndustryTypeSlug,
		"country":            req.Country,
		"city":               req.City,
		"website":            req.Website,
		"hourly_rate":        nullDecimal(req.HourlyRate),
	}
	setIf(values, "available", req.Available)
	return r.freelances.insert(ctx, values)
}

func (r *FreelanceRepository) Update(ctx context.Context, req *model.UpdateFreelanceRequest) (*model.Freelance, error) {
	set := map[string]any{}
	setIf(set, "slug", req.Slug)
	setIf(set, "full_name", req.FullName)
	setIf(set, "email", req.Email)
	setIf(set, "headline", req.Headline)
	setIf(set, "bio", req.Bio)
	setIf(set, "industry_type_slug", req.IndustryTypeSlug)
	setIf(set, "country", req.Country)
	setIf(set, "city", req.City)
	setIf(set, "website", req.Website)
	if req.HourlyRate != nil {
		set["hourly_rate"] = nullDecimal(req.HourlyRate)
	}
	setIf(set, "available", req.Available)
	return r.freelances.update(ctx, sq.Eq{"id": req.ID}, set)
}

func (r *FreelanceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.freelances.delete(ctx, sq.Eq{"id": id})
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
