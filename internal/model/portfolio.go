package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/deppfellow/directory/internal/validation"
)

// Portfolio is a showcase item owned by exactly one company or one
// freelancer.
type Portfolio struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CompanyID   *uuid.UUID `json:"companyId" db:"company_id"`
	FreelanceID *uuid.UUID `json:"freelanceId" db:"freelance_id"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	URL         *string    `json:"url" db:"url"`
	ImageURL    *string    `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

type CreatePortfolioRequest struct {
	CompanyID   *uuid.UUID `json:"companyId"`
	FreelanceID *uuid.UUID `json:"freelanceId"`
	Title       string     `json:"title" validate:"required,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=5000"`
	URL         *string    `json:"url" validate:"omitempty,url"`
	ImageURL    *string    `json:"imageUrl" validate:"omitempty,url"`
}

func (r *CreatePortfolioRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}

	if (r.CompanyID == nil) == (r.FreelanceID == nil) {
		return validation.CustomValidationErrors{
			{Field: "companyId", Message: "exactly one of companyId or freelanceId is required"},
			{Field: "freelanceId", Message: "exactly one of companyId or freelanceId is required"},
		}
	}
	return nil
}

// UpdatePortfolioRequest edits the content of a portfolio; its owner is
// fixed at creation.
type UpdatePortfolioRequest struct {
	ID          uuid.UUID `param:"id" json:"-" validate:"required"`
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=5000"`
	URL         *string   `json:"url" validate:"omitempty,url"`
	ImageURL    *string   `json:"imageUrl" validate:"omitempty,url"`
}

func (r *UpdatePortfolioRequest) Validate() error {
	return validation.Struct(r)
}
