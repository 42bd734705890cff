package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/validation"
)

// Standard is a certification or norm (ISO 9001, SOC 2, ...) companies
// can be measured against.
type Standard struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Code             string    `json:"code" db:"code"`
	Name             string    `json:"name" db:"name"`
	Description      *string   `json:"description" db:"description"`
	IssuingBody      *string   `json:"issuingBody" db:"issuing_body"`
	IndustryTypeSlug *string   `json:"industryTypeSlug" db:"industry_type_slug"`
	URL              *string   `json:"url" db:"url"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateStandardRequest struct {
	Code             string  `json:"code" validate:"required,max=64"`
	Name             string  `json:"name" validate:"required,max=200"`
	Description      *string `json:"description" validate:"omitempty,max=5000"`
	IssuingBody      *string `json:"issuingBody" validate:"omitempty,max=200"`
	IndustryTypeSlug *string `json:"industryTypeSlug" validate:"omitempty,min=1"`
	URL              *string `json:"url" validate:"omitempty,url"`
}

func (r *CreateStandardRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateStandardRequest struct {
	ID               uuid.UUID `param:"id" json:"-" validate:"required"`
	Code             *string   `json:"code" validate:"omitempty,min=1,max=64"`
	Name             *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Description      *string   `json:"description" validate:"omitempty,max=5000"`
	IssuingBody      *string   `json:"issuingBody" validate:"omitempty,max=200"`
	IndustryTypeSlug *string   `json:"industryTypeSlug" validate:"omitempty,min=1"`
	URL              *string   `json:"url" validate:"omitempty,url"`
}

func (r *UpdateStandardRequest) Validate() error {
	return validation.Struct(r)
}
