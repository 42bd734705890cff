package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type StandardStore interface {
	List(ctx context.Context, d query.Descriptor) ([]model.Standard, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Standard, error)
	Create(ctx context.Context, req *model.CreateStandardRequest) (*model.Standard, error)
	Update(ctx context.Context, req *model.UpdateStandardRequest) (*model.Standard, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type StandardService struct {
	store StandardStore
}

func NewStandardService(store StandardStore) *StandardService {
	return &StandardService{store: store}
}

func (s *StandardService) List(ctx context.Context, d query.Descriptor) (model.Response[[]model.Standard], error) {
	logDropped(ctx, "standard", d)

	items, total, err := s.store.List(ctx, d)
	if err != nil {
		return model.Response[[]model.Standard]{}, err
	}
	return model.Paginate(items, total, d.Page, d.Limit, ""), nil
}

func (s *StandardService) Get(ctx context.Context, id uuid.UUID) (model.Response[*model.Standard], error) {
	standard, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Response[*model.Standard]{}, err
	}
	return model.Success(standard, ""), nil
}

func (s *StandardService) Create(ctx context.Context, req *model.CreateStandardRequest) (model.Response[*model.Standard], error) {
	standard, err := s.store.Create(ctx, req)
	if err != nil {
		return model.Response[*model.Standard]{}, storeError(err)
	}
	return model.Success(standard, "Standard created"), nil
}

func (s *StandardService) Update(ctx context.Context, req *model.UpdateStandardRequest) (model.Response[*model.Standard], error) {
	standard, err := s.store.Update(ctx, req)
	if err != nil {
		return model.Response[*model.Standard]{}, storeError(err)
	}
	return model.Success(standard, "Standard updated"), nil
}

func (s *StandardService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeError(s.store.Delete(ctx, id))
}
