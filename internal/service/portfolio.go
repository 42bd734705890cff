package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type PortfolioStore interface {
	List(ctx context.Context, d query.Descriptor) ([]model.Portfolio, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Portfolio, error)
	Create(ctx context.Context, req *model.CreatePortfolioRequest) (*model.Portfolio, error)
	Update(ctx context.Context, req *model.UpdatePortfolioRequest) (*model.Portfolio, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PortfolioService struct {
	store PortfolioStore
}

func NewPortfolioService(store PortfolioStore) *PortfolioService {
	return &PortfolioService{store: store}
}

func (s *PortfolioService) List(ctx context.Context, d query.Descriptor) (model.Response[[]model.Portfolio], error) {
	logDropped(ctx, "portfolio", d)

	items, total, err := s.store.List(ctx, d)
	if err != nil {
		return model.Response[[]model.Portfolio]{}, err
	}
	return model.Paginate(items, total, d.Page, d.Limit, ""), nil
}

func (s *PortfolioService) Get(ctx context.Context, id uuid.UUID) (model.Response[*model.Portfolio], error) {
	portfolio, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Response[*model.Portfolio]{}, err
	}
	return model.Success(portfolio, ""), nil
}

// Create adds a portfolio item. A missing owner surfaces as an invalid
// reference from the store.
func (s *PortfolioService) Create(ctx context.Context, req *model.CreatePortfolioRequest) (model.Response[*model.Portfolio], error) {
	portfolio, err := s.store.Create(ctx, req)
	if err != nil {
		return model.Response[*model.Portfolio]{}, storeError(err)
	}
	return model.Success(portfolio, "Portfolio created"), nil
}

func (s *PortfolioService) Update(ctx context.Context, req *model.UpdatePortfolioRequest) (model.Response[*model.Portfolio], error) {
	portfolio, err := s.store.Update(ctx, req)
	if err != nil {
		return model.Response[*model.Portfolio]{}, storeError(err)
	}
	return model.Success(portfolio, "Portfolio updated"), nil
}

func (s *PortfolioService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeError(s.store.Delete(ctx, id))
}
