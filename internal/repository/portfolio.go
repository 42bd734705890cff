package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/database"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type PortfolioRepository struct {
	portfolios *table[model.Portfolio]
}

func NewPortfolioRepository(db database.Pool) *PortfolioRepository {
	return &PortfolioRepository{
		portfolios: &table[model.Portfolio]{
			db:   db,
			name: "portfolios",
			columns: []string{
				"id", "company_id", "freelance_id", "title", "description", "url", "image_url",
				"created_at", "updated_at",
			},
			fields: query.Columns{
				"id":          "id",
				"companyId":   "company_id",
				"freelanceId": "freelance_id",
				"title":       "title",
				"description": "description",
				"createdAt":   "created_at",
				"updatedAt":   "updated_at",
			},
			searchable:  []string{"title", "description"},
			defaultSort: query.Sort{Field: "createdAt", Direction: query.Desc},
			tieBreaker:  "id",
		},
	}
}

func (r *PortfolioRepository) List(ctx context.Context, d query.Descriptor) ([]model.Portfolio, int64, error) {
	return r.portfolios.list(ctx, d, nil)
}

func (r *PortfolioRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Portfolio, error) {
	return r.portfolios.get(ctx, sq.Eq{"id": id})
}

func (r *PortfolioRepository) Create(ctx context.Context, req *model.CreatePortfolioRequest) (*model.Portfolio, error) {
	return r.portfolios.insert(ctx, map[string]any{
		"company_id":   req.CompanyID,
		"freelance_id": req.FreelanceID,
		"title":        req.Title,
		"description":  req.Description,
		"url":          req.URL,
		"image_url":    req.ImageURL,
	})
}

func (r *PortfolioRepository) Update(ctx context.Context, req *model.UpdatePortfolioRequest) (*model.Portfolio, error) {
	set := map[string]any{}
	setIf(set, "title", req.Title)
	setIf(set, "description", req.Description)
	setIf(set, "url", req.URL)
	setIf(set, "image_url", req.ImageURL)
	return r.portfolios.update(ctx, sq.Eq{"id": req.ID}, set)
}

func (r *PortfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.portfolios.delete(ctx, sq.Eq{"id": id})
}
