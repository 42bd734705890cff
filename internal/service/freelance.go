package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type FreelanceStore interface {
	List(ctx context.Context, d query.Descriptor) ([]model.Freelance, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Freelance, error)
	GetBySlug(ctx context.Context, slug string) (*model.Freelance, error)
	Create(ctx context.Context, slug string, req *model.CreateFreelanceRequest) (*model.Freelance, error)
	Update(ctx context.Context, req *model.UpdateFreelanceRequest) (*model.Freelance, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type FreelanceService struct {
	store FreelanceStore
}

func NewFreelanceService(store FreelanceStore) *FreelanceService {
	return &FreelanceService{store: store}
}

func (s *FreelanceService) List(ctx context.Context, d query.Descriptor) (model.Response[[]model.Freelance], error) {
	logDropped(ctx, "freelance", d)

	items, total, err := s.store.List(ctx, d)
	if err != nil {
		return model.Response[[]model.Freelance]{}, err
	}
	return model.Paginate(items, total, d.Page, d.Limit, ""), nil
}

func (s *FreelanceService) Get(ctx context.Context, id uuid.UUID) (model.Response[*model.Freelance], error) {
	freelance, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Response[*model.Freelance]{}, err
	}
	return model.Success(freelance, ""), nil
}

func (s *FreelanceService) GetBySlug(ctx context.Context, slug string) (model.Response[*model.Freelance], error) {
	freelance, err := s.store.GetBySlug(ctx, slug)
	if err != nil {
		return model.Response[*model.Freelance]{}, err
	}
	return model.Success(freelance, ""), nil
}

func (s *FreelanceService) Create(ctx context.Context, req *model.CreateFreelanceRequest) (model.Response[*model.Freelance], error) {
	slug, err := deriveSlug(req.Slug, req.FullName)
	if err != nil {
		return model.Response[*model.Freelance]{}, err
	}

	freelance, err := s.store.Create(ctx, slug, req)
	if err != nil {
		return model.Response[*model.Freelance]{}, storeError(err)
	}
	return model.Success(freelance, "Freelancer created"), nil
}

func (s *FreelanceService) Update(ctx context.Context, req *model.UpdateFreelanceRequest) (model.Response[*model.Freelance], error) {
	freelance, err := s.store.Update(ctx, req)
	if err != nil {
		return model.Response[*model.Freelance]{}, storeError(err)
	}
	return model.Success(freelance, "Freelancer updated"), nil
}

func (s *FreelanceService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeError(s.store.Delete(ctx, id))
}
