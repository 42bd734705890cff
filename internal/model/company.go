package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/validation"
)

type Company struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Slug             string    `json:"slug" db:"slug"`
	Name             string    `json:"name" db:"name"`
	Description      *string   `json:"description" db:"description"`
	IndustryTypeSlug string    `json:"industryTypeSlug" db:"industry_type_slug"`
	Country          *string   `json:"country" db:"country"`
	City             *string   `json:"city" db:"city"`
	Website          *string   `json:"website" db:"website"`
	Email            *string   `json:"email" db:"email"`
	Phone            *string   `json:"phone" db:"phone"`
	LogoURL          *string   `json:"logoUrl" db:"logo_url"`
	FoundedYear      *int      `json:"foundedYear" db:"founded_year"`
	EmployeeCount    *int      `json:"employeeCount" db:"employee_count"`
	Verified         bool      `json:"verified" db:"verified"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// CreateCompanyRequest creates a company. The slug is derived from the
// name when omitted.
type CreateCompanyRequest struct {
	Slug             string  `json:"slug" validate:"omitempty,max=120,slug"`
	Name             string  `json:"name" validate:"required,max=200"`
	Description      *string `json:"description" validate:"omitempty,max=5000"`
	IndustryTypeSlug string  `json:"industryTypeSlug" validate:"required"`
	Country          *string `json:"country" validate:"omitempty,len=2"`
	City             *string `json:"city" validate:"omitempty,max=120"`
	Website          *string `json:"website" validate:"omitempty,url"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Phone            *string `json:"phone" validate:"omitempty,e164"`
	LogoURL          *string `json:"logoUrl" validate:"omitempty,url"`
	FoundedYear      *int    `json:"foundedYear" validate:"omitempty,min=1800,max=2100"`
	EmployeeCount    *int    `json:"employeeCount" validate:"omitempty,min=0"`
	Verified         bool    `json:"verified"`
}

func (r *CreateCompanyRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateCompanyRequest is a partial update: nil fields are left untouched.
type UpdateCompanyRequest struct {
	ID               uuid.UUID `param:"id" json:"-" validate:"required"`
	Slug             *string   `json:"slug" validate:"omitempty,max=120,slug"`
	Name             *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string   `json:"description" validate:"omitempty,max=5000"`
	IndustryTypeSlug *string   `json:"industryTypeSlug" validate:"omitempty,min=1"`
	Country          *string   `json:"country" validate:"omitempty,len=2"`
	City             *string   `json:"city" validate:"omitempty,max=120"`
	Website          *string   `json:"website" validate:"omitempty,url"`
	Email            *string   `json:"email" validate:"omitempty,email"`
	Phone            *string   `json:"phone" validate:"omitempty,e164"`
	LogoURL          *string   `json:"logoUrl" validate:"omitempty,url"`
	FoundedYear      *int      `json:"foundedYear" validate:"omitempty,min=1800,max=2100"`
	EmployeeCount    *int      `json:"employeeCount" validate:"omitempty,min=0"`
	Verified         *bool     `json:"verified"`
}

func (r *UpdateCompanyRequest) Validate() error {
	return validation.Struct(r)
}

// IDRequest addresses an entity by its UUID path parameter.
type IDRequest struct {
	ID uuid.UUID `param:"id" json:"-" validate:"required"`
}

func (r *IDRequest) Validate() error {
	return validation.Struct(r)
}

// SlugRequest addresses an entity by its slug path parameter.
type SlugRequest struct {
	Slug string `param:"slug" json:"-" validate:"required"`
}

func (r *SlugRequest) Validate() error {
	return validation.Struct(r)
}

// CompanyContact is the part of a company revenue snapshots and
// notifications need.
type CompanyContact struct {
	Name  string
	Email *string
}
