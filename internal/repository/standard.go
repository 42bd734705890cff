package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/database"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type StandardRepository struct {
	standards *table[model.Standard]
}

func NewStandardRepository(db database.Pool) *StandardRepository {
	return &StandardRepository{
		standards: &table[model.Standard]{
			db:   db,
			name: "standards",
			columns: []string{
				"id", "code", "name", "description", "issuing_body", "industry_type_slug", "url",
				"created_at", "updated_at",
			},
			fields: query.Columns{
				"id":               "id",
				"code":             "code",
				"name":             "name",
				"issuingBody":      "issuing_body",
				"industryTypeSlug": "industry_type_slug",
				"createdAt":        "created_at",
				"updatedAt":        "updated_at",
			},
			searchable:  []string{"code", "name", "issuingBody"},
			defaultSort: query.Sort{Field: "code", Direction: query.Asc},
			tieBreaker:  "id",
		},
	}
}

func (r *StandardRepository) List(ctx context.Context, d query.Descriptor) ([]model.Standard, int64, error) {
	return r.standards.list(ctx, d, nil)
}

func (r *StandardRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Standard, error) {
	return r.standards.get(ctx, sq.Eq{"id": id})
}

func (r *StandardRepository) Create(ctx context.Context, req *model.CreateStandardRequest) (*model.Standard, error) {
	return r.standards.insert(ctx, map[string]any{
		"code":               req.Code,
		"name":               req.Name,
		"description":        req.Description,
		"issuing_body":       req.IssuingBody,
		"industry_type_slug": req.IndustryTypeSlug,
		"url":                req.URL,
	})
}

func (r *StandardRepository) Update(ctx context.Context, req *model.UpdateStandardRequest) (*model.Standard, error) {
	set := map[string]any{}
	setIf(set, "code", req.Code)
	setIf(set, "name", req.Name)
	setIf(set, "description", req.Description)
	setIf(set, "issuing_body", req.IssuingBody)
	setIf(set, "industry_type_slug", req.IndustryTypeSlug)
	setIf(set, "url", req.URL)
	return r.standards.update(ctx, sq.Eq{"id": req.ID}, set)
}

func (r *StandardRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.standards.delete(ctx, sq.Eq{"id": id})
}
