package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/validation"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

type User struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Email     string     `json:"email" db:"email"`
	FullName  string     `json:"fullName" db:"full_name"`
	Role      string     `json:"role" db:"role"`
	CompanyID *uuid.UUID `json:"companyId" db:"company_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
}

type CreateUserRequest struct {
	Email     string     `json:"email" validate:"required,email,max=254"`
	FullName  string     `json:"fullName" validate:"required,max=200"`
	Role      string     `json:"role" validate:"omitempty,oneof=admin editor viewer"`
	CompanyID *uuid.UUID `json:"companyId"`
}

func (r *CreateUserRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateUserRequest struct {
	ID        uuid.UUID  `param:"id" json:"-" validate:"required"`
	Email     *string    `json:"email" validate:"omitempty,email,max=254"`
	FullName  *string    `json:"fullName" validate:"omitempty,min=1,max=200"`
	Role      *string    `json:"role" validate:"omitempty,oneof=admin editor viewer"`
	CompanyID *uuid.UUID `json:"companyId"`
}

func (r *UpdateUserRequest) Validate() error {
	return validation.Struct(r)
}
