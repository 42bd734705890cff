package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deppfellow/directory/internal/lib/job"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type UserStore interface {
	List(ctx context.Context, d query.Descriptor) ([]model.User, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)
	Update(ctx context.Context, req *model.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Notifier enqueues the background tasks services trigger.
type Notifier interface {
	EnqueueWelcomeEmail(ctx context.Context, p job.WelcomeEmailPayload) error
	EnqueueRevenueTableUpdated(ctx context.Context, p job.RevenueTableUpdatedPayload) error
}

type UserService struct {
	store    UserStore
	notifier Notifier
}

func NewUserService(store UserStore, notifier Notifier) *UserService {
	return &UserService{store: store, notifier: notifier}
}

func (s *UserService) List(ctx context.Context, d query.Descriptor) (model.Response[[]model.User], error) {
	logDropped(ctx, "user", d)

	items, total, err := s.store.List(ctx, d)
	if err != nil {
		return model.Response[[]model.User]{}, err
	}
	return model.Paginate(items, total, d.Page, d.Limit, ""), nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (model.Response[*model.User], error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.Response[*model.User]{}, err
	}
	return model.Success(user, ""), nil
}

// Create stores the user and queues its welcome email. A queueing failure
// is logged and does not fail the request.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (model.Response[*model.User], error) {
	user, err := s.store.Create(ctx, req)
	if err != nil {
		return model.Response[*model.User]{}, storeError(err)
	}

	err = s.notifier.EnqueueWelcomeEmail(ctx, job.WelcomeEmailPayload{
		To:       user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("user_id", user.ID.String()).
			Msg("failed to enqueue welcome email")
	}

	return model.Success(user, "User created"), nil
}

func (s *UserService) Update(ctx context.Context, req *model.UpdateUserRequest) (model.Response[*model.User], error) {
	user, err := s.store.Update(ctx, req)
	if err != nil {
		return model.Response[*model.User]{}, storeError(err)
	}
	return model.Success(user, "User updated"), nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	return storeError(s.store.Delete(ctx, id))
}
