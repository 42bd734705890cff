package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/database"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

type UserRepository struct {
	users *table[model.User]
}

func NewUserRepository(db database.Pool) *UserRepository {
	return &UserRepository{
		users: &table[model.User]{
			db:      db,
			name:    "users",
			columns: []string{"id", "email", "full_name", "role", "company_id", "created_at", "updated_at"},
			fields: query.Columns{
				"id":        "id",
				"email":     "email",
				"fullName":  "full_name",
				"role":      "role",
				"companyId": "company_id",
				"createdAt": "created_at",
				"updatedAt": "updated_at",
			},
			searchable:  []string{"email", "fullName"},
			defaultSort: query.Sort{Field: "createdAt", Direction: query.Desc},
			tieBreaker:  "id",
		},
	}
}

func (r *UserRepository) List(ctx context.Context, d query.Descriptor) ([]model.User, int64, error) {
	return r.users.list(ctx, d, nil)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.users.get(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleViewer
	}

	return r.users.insert(ctx, map[string]any{
		"email":      req.Email,
		"full_name":  req.FullName,
		"role":       role,
		"company_id": req.CompanyID,
	})
}

func (r *UserRepository) Update(ctx context.Context, req *model.UpdateUserRequest) (*model.User, error) {
	set := map[string]any{}
	setIf(set, "email", req.Email)
	setIf(set, "full_name", req.FullName)
	setIf(set, "role", req.Role)
	setIf(set, "company_id", req.CompanyID)
	return r.users.update(ctx, sq.Eq{"id": req.ID}, set)
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.users.delete(ctx, sq.Eq{"id": id})
}
