package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type CompanyStore interface {
	List(ctx context.Context, d query.Descriptor) ([]model.Company, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Company, error)
	GetBySlug(ctx context.Context, slug string) (*model.Company, error)
	Create(ctx context.Context, slug string, req *model.CreateCompanyRequest) (*model.Company, error)
	Update(ctx context.Context, req *model.UpdateCompanyRequest) (*model.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CompanyService struct {
	store CompanyStore
}

func NewCompanyService(store CompanyStore) *CompanyService {
	return &CompanyService{store: store}
}

func (s *CompanyService) List(ctx context.Context, d query.Descriptor) (model.Response[[]model.Company], error) {
	logDropped(ctx, "company", d)

	items, total, err := s.store.List(ctx, d)
	if err != nil {
		return model.Response[[]model.Company]{}, err
	}
	return model.Paginate(items, total, d.Page, d.Limit, ""), nil
}

func (s *CompanyService) Get(ctx context.Context, id uuid.UUID) (model.Response[*model.Company], error) {
	company, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Response[*model.Company]{}, err
	}
	return model.Success(company, ""), nil
}

func (s *CompanyService) GetBySlug(ctx context.Context, slug string) (model.Response[*model.Company], error) {
	company, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return model.Response[*model.Company]{}, err
	}
	return model.Success(company, ""), nil
}

func (s *CompanyService) Create(ctx context.Context, req *model.CreateCompanyRequest) (model.Response[*model.Company], error) {
	slug, err := deriveSlug(req.Slug, req.Name)
	if err != nil {
		return model.Response[*model.Company]{}, err
	}

	company, err := s.store.Create(ctx, slug, req)
	if err != nil {
		return model.Response[*model.Company]{}, storeError(err)
	}
	return model.Success(company, "Company created"), nil
}

func (s *CompanyService) Update(ctx context.Context, req *model.UpdateCompanyRequest) (model.Response[*model.Company], error) {
	company, err := s.store.Update(ctx, req)
	if err != nil {
		return model.Response[*model.Company]{}, storeError(err)
	}
	return model.Success(company, "Company updated"), nil
}

// Delete removes a company with its portfolios and revenue rows.
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeError(s.store.Delete(ctx, id))
}
