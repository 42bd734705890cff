package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/directory/internal/validation"
)

type Freelance struct {
	ID               uuid.UUID           `json:"id" db:"id"`
	Slug             string              `json:"slug" db:"slug"`
	FullName         string              `json:"fullName" db:"full_name"`
	Email            string              `json:"email" db:"email"`
	Headline         *string             `json:"headline" db:"headline"`
	Bio              *string             `json:"bio" db:"bio"`
	IndustryTypeSlug string              `json:"industryTypeSlug" db:"industry_type_slug"`
	Country          *string             `json:"country" db:"country"`
	City             *string             `json:"city" db:"city"`
	Website          *string             `json:"website" db:"website"`
	HourlyRate       decimal.NullDecimal `json:"hourlyRate" db:"hourly_rate"`
	Available        bool                `json:"available" db:"available"`
	CreatedAt        time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time           `json:"updatedAt" db:"updated_at"`
}

type CreateFreelanceRequest struct {
	Slug             string           `json:"slug" validate:"omitempty,max=120,slug"`
	FullName         string           `json:"fullName" validate:"required,max=200"`
	Email            string           `json:"email" validate:"required,email"`
	Headline         *string          `json:"headline" validate:"omitempty,max=200"`
	Bio              *string          `json:"bio" validate:"omitempty,max=5000"`
	IndustryTypeSlug string           `json:"industryTypeSlug" validate:"required"`
	Country          *string          `json:"country" validate:"omitempty,len=2"`
	City             *string          `json:"city" validate:"omitempty,max=120"`
	Website          *string          `json:"website" validate:"omitempty,url"`
	HourlyRate       *decimal.Decimal `json:"hourlyRate"`
	Available        *bool            `json:"available"`
}

func (r *CreateFreelanceRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return checkHourlyRate(r.HourlyRate)
}

type UpdateFreelanceRequest struct {
	ID               uuid.UUID        `param:"id" json:"-" validate:"required"`
	Slug             *string          `json:"slug" validate:"omitempty,max=120,slug"`
	FullName         *string          `json:"fullName" validate:"omitempty,min=1,max=200"`
	Email            *string          `json:"email" validate:"omitempty,email"`
	Headline         *string          `json:"headline" validate:"omitempty,max=200"`
	Bio              *string          `json:"bio" validate:"omitempty,max=5000"`
	IndustryTypeSlug *string          `json:"industryTypeSlug" validate:"omitempty,min=1"`
	Country          *string          `json:"country" validate:"omitempty,len=2"`
	City             *string          `json:"city" validate:"omitempty,max=120"`
	Website          *string          `json:"website" validate:"omitempty,url"`
	HourlyRate       *decimal.Decimal `json:"hourlyRate"`
	Available        *bool            `json:"available"`
}

func (r *UpdateFreelanceRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	return checkHourlyRate(r.HourlyRate)
}

func checkHourlyRate(rate *decimal.Decimal) error {
	if rate != nil && rate.IsNegative() {
		return validation.CustomValidationErrors{
			{Field: "hourlyRate", Message: "must be at least 0"},
		}
	}
	return nil
}
