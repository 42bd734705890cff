package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/directory/internal/errs"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type IndustryStore interface {
	List(ctx context.Context, d query.Descriptor) ([]model.IndustryType, int64, error)
	Get(ctx context.Context, slug string) (*model.IndustryType, error)
	Create(ctx context.Context, slug string, req *model.CreateIndustryTypeRequest) (*model.IndustryType, error)
	Update(ctx context.Context, req *model.UpdateIndustryTypeRequest) (*model.IndustryType, error)
	Delete(ctx context.Context, slug string) error

	ListItems(ctx context.Context, kind model.TaxonomyKind, industry string, d query.Descriptor) ([]model.TaxonomyItem, int64, error)
	GetItem(ctx context.Context, kind model.TaxonomyKind, industry, slug string) (*model.TaxonomyItem, error)
	CreateItem(ctx context.Context, slug string, req *model.CreateTaxonomyItemRequest) (*model.TaxonomyItem, error)
	UpdateItem(ctx context.Context, req *model.UpdateTaxonomyItemRequest) (*model.TaxonomyItem, error)
	DeleteItem(ctx context.Context, kind model.TaxonomyKind, industry, slug string) error
}

// IndustryService manages industry types and the revenue taxonomies
// scoped to them.
type IndustryService struct {
	store IndustryStore
}

func NewIndustryService(store IndustryStore) *IndustryService {
	return &IndustryService{store: store}
}

func (s *IndustryService) List(ctx context.Context, d query.Descriptor) (model.Response[[]model.IndustryType], error) {
	logDropped(ctx, "industry_type", d)

	items, total, err := s.store.List(ctx, d)
	if err != nil {
		return model.Response[[]model.IndustryType]{}, err
	}
	return model.Paginate(items, total, d.Page, d.Limit, ""), nil
}

func (s *IndustryService) Get(ctx context.Context, slug string) (model.Response[*model.IndustryType], error) {
	item, err := s.store.Get(ctx, slug)
	if err != nil {
		return model.Response[*model.IndustryType]{}, err
	}
	return model.Success(item, ""), nil
}

// reservedIndustrySlugs are static segments of the company revenue
// routes; an industry type named like them could not be addressed there.
var reservedIndustrySlugs = map[string]bool{
	"sources": true,
	"stats":   true,
}

func (s *IndustryService) Create(ctx context.Context, req *model.CreateIndustryTypeRequest) (model.Response[*model.IndustryType], error) {
	slug, err := deriveSlug(req.Slug, req.Name)
	if err != nil {
		return model.Response[*model.IndustryType]{}, err
	}
	if reservedIndustrySlugs[slug] {
		return model.Response[*model.IndustryType]{}, errs.NewValidationError("Validation failed", []errs.FieldError{
			{Field: "slug", Error: fmt.Sprintf("%q is reserved, choose another slug", slug)},
		})
	}

	item, err := s.store.Create(ctx, slug, req)
	if err != nil {
		return model.Response[*model.IndustryType]{}, storeError(err)
	}
	return model.Success(item, "Industry type created"), nil
}

func (s *IndustryService) Update(ctx context.Context, req *model.UpdateIndustryTypeRequest) (model.Response[*model.IndustryType], error) {
	item, err := s.store.Update(ctx, req)
	if err != nil {
		return model.Response[*model.IndustryType]{}, storeError(err)
	}
	return model.Success(item, "Industry type updated"), nil
}

// Delete removes an industry type with its taxonomies. Industry types
// still used by companies or freelancers are kept.
func (s *IndustryService) Delete(ctx context.Context, slug string) error {
	err := s.store.Delete(ctx, slug)
	if isForeignKeyViolation(err) {
		return errs.NewConflictError("Industry type is still used by companies or freelancers", true, nil)
	}
	return storeError(err)
}

// ensureIndustry reports a missing parent industry as an invalid reference
// instead of an empty list.
func (s *IndustryService) ensureIndustry(ctx context.Context, slug string) error {
	if _, err := s.store.Get(ctx, slug); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NewInvalidReferenceError("The referenced Industry Type does not exist", "industry")
		}
		return err
	}
	return nil
}

func (s *IndustryService) ListItems(ctx context.Context, req *model.ListTaxonomyRequest, d query.Descriptor) (model.Response[[]model.TaxonomyItem], error) {
	logDropped(ctx, req.Kind.Singular(), d)

	if err := s.ensureIndustry(ctx, req.Industry); err != nil {
		return model.Response[[]model.TaxonomyItem]{}, err
	}

	items, total, err := s.store.ListItems(ctx, req.Kind, req.Industry, d)
	if err != nil {
		return model.Response[[]model.TaxonomyItem]{}, err
	}
	return model.Paginate(items, total, d.Page, d.Limit, ""), nil
}

func (s *IndustryService) GetItem(ctx context.Context, req *model.TaxonomyItemRequest) (model.Response[*model.TaxonomyItem], error) {
	item, err := s.store.GetItem(ctx, req.Kind, req.Industry, req.Slug)
	if err != nil {
		return model.Response[*model.TaxonomyItem]{}, err
	}
	return model.Success(item, ""), nil
}

func (s *IndustryService) CreateItem(ctx context.Context, req *model.CreateTaxonomyItemRequest) (model.Response[*model.TaxonomyItem], error) {
	slug, err := deriveSlug(req.Slug, req.Name)
	if err != nil {
		return model.Response[*model.TaxonomyItem]{}, err
	}

	item, err := s.store.CreateItem(ctx, slug, req)
	if err != nil {
		return model.Response[*model.TaxonomyItem]{}, storeError(err)
	}
	return model.Success(item, req.Kind.Singular()+" created"), nil
}

func (s *IndustryService) UpdateItem(ctx context.Context, req *model.UpdateTaxonomyItemRequest) (model.Response[*model.TaxonomyItem], error) {
	item, err := s.store.UpdateItem(ctx, req)
	if err != nil {
		return model.Response[*model.TaxonomyItem]{}, storeError(err)
	}
	return model.Success(item, req.Kind.Singular()+" updated"), nil
}

// DeleteItem removes a taxonomy item. Items still referenced by revenue
// rows are kept.
func (s *IndustryService) DeleteItem(ctx context.Context, req *model.TaxonomyItemRequest) error {
	err := s.store.DeleteItem(ctx, req.Kind, req.Industry, req.Slug)
	if isForeignKeyViolation(err) {
		return errs.NewConflictError(req.Kind.Singular()+" is still used by revenue rows", true, nil)
	}
	return storeError(err)
}
