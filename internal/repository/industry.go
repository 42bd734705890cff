package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/deppfellow/directory/internal/database"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type IndustryRepository struct {
	industries *table[model.IndustryType]
	db         database.Pool
}

var taxonomyColumns = []string{
	"industry_type_slug", "slug", "name", "description", "sort_order", "created_at", "updated_at",
}

var taxonomyFields = query.Columns{
	"industryTypeSlug": "industry_type_slug",
	"slug":             "slug",
	"name":             "name",
	"sortOrder":        "sort_order",
	"createdAt":        "created_at",
}

func NewIndustryRepository(db database.Pool) *IndustryRepository {
	return &IndustryRepository{
		db: db,
		industries: &table[model.IndustryType]{
			db:      db,
			name:    "industry_types",
			columns: []string{"slug", "name", "description", "created_at", "updated_at"},
			fields: query.Columns{
				"slug":      "slug",
				"name":      "name",
				"createdAt": "created_at",
				"updatedAt": "updated_at",
			},
			searchable:  []string{"name", "slug"},
			defaultSort: query.Sort{Field: "name", Direction: query.Asc},
			tieBreaker:  "slug",
		},
	}
}

func (r *IndustryRepository) List(ctx context.Context, d query.Descriptor) ([]model.IndustryType, int64, error) {
	return r.industries.list(ctx, d, nil)
}

func (r *IndustryRepository) Get(ctx context.Context, slug string) (*model.IndustryType, error) {
	return r.industries.get(ctx, sq.Eq{"slug": slug})
}

func (r *IndustryRepository) Create(ctx context.Context, slug string, req *model.CreateIndustryTypeRequest) (*model.IndustryType, error) {
	return r.industries.insert(ctx, map[string]any{
		"slug":        slug,
		"name":        req.Name,
		"description": req.Description,
	})
}

func (r *IndustryRepository) Update(ctx context.Context, req *model.UpdateIndustryTypeRequest) (*model.IndustryType, error) {
	set := map[string]any{}
	setIf(set, "name", req.Name)
	setIf(set, "description", req.Description)
	return r.industries.update(ctx, sq.Eq{"slug": req.Slug}, set)
}

func (r *IndustryRepository) Delete(ctx context.Context, slug string) error {
	return r.industries.delete(ctx, sq.Eq{"slug": slug})
}

func (r *IndustryRepository) taxonomy(kind model.TaxonomyKind) *table[model.TaxonomyItem] {
	return &table[model.TaxonomyItem]{
		db:          r.db,
		name:        kind.Table(),
		columns:     taxonomyColumns,
		fields:      taxonomyFields,
		searchable:  []string{"name", "slug"},
		defaultSort: query.Sort{Field: "name", Direction: query.Asc},
		tieBreaker:  "slug",
	}
}

// ListItems lists the items of one taxonomy kind within an industry type.
func (r *IndustryRepository) ListItems(ctx context.Context, kind model.TaxonomyKind, industry string, d query.Descriptor) ([]model.TaxonomyItem, int64, error) {
	return r.taxonomy(kind).list(ctx, d, sq.Eq{"industry_type_slug": industry})
}

func (r *IndustryRepository) GetItem(ctx context.Context, kind model.TaxonomyKind, industry, slug string) (*model.TaxonomyItem, error) {
	return r.taxonomy(kind).get(ctx, sq.Eq{"industry_type_slug": industry, "slug": slug})
}

func (r *IndustryRepository) CreateItem(ctx context.Context, slug string, req *model.CreateTaxonomyItemRequest) (*model.TaxonomyItem, error) {
	return r.taxonomy(req.Kind).insert(ctx, map[string]any{
		"industry_type_slug": req.Industry,
		"slug":               slug,
		"name":               req.Name,
		"description":        req.Description,
		"sort_order":         req.SortOrder,
	})
}

func (r *IndustryRepository) UpdateItem(ctx context.Context, req *model.UpdateTaxonomyItemRequest) (*model.TaxonomyItem, error) {
	set := map[string]any{}
	setIf(set, "name", req.Name)
	setIf(set, "description", req.Description)
	setIf(set, "sort_order", req.SortOrder)
	return r.taxonomy(req.Kind).update(ctx, sq.Eq{"industry_type_slug": req.Industry, "slug": req.Slug}, set)
}

func (r *IndustryRepository) DeleteItem(ctx context.Context, kind model.TaxonomyKind, industry, slug string) error {
	return r.taxonomy(kind).delete(ctx, sq.Eq{"industry_type_slug": industry, "slug": slug})
}
