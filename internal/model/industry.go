package model

import (
	"time"

	"github.com/deppfellow/directory/internal/validation"
)

// IndustryType is the top-level classification every company, freelancer
// and revenue taxonomy belongs to. It is addressed by slug.
type IndustryType struct {
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// TaxonomyKind names one of the industry scoped revenue taxonomies.
type TaxonomyKind string

const (
	KindSource   TaxonomyKind = "sources"
	KindCategory TaxonomyKind = "categories"
	KindSegment  TaxonomyKind = "segments"
	KindChannel  TaxonomyKind = "channels"
)

// TaxonomyKinds lists every kind, in display order.
var TaxonomyKinds = []TaxonomyKind{KindSource, KindCategory, KindSegment, KindChannel}

// Valid reports whether k is a known kind.
func (k TaxonomyKind) Valid() bool {
	switch k {
	case KindSource, KindCategory, KindSegment, KindChannel:
		return true
	}
	return false
}

// Table is the table holding items of kind k.
func (k TaxonomyKind) Table() string {
	return "revenue_" + string(k)
}

// Singular is the display name of one item of kind k.
func (k TaxonomyKind) Singular() string {
	switch k {
	case KindSource:
		return "Source"
	case KindCategory:
		return "Category"
	case KindSegment:
		return "Segment"
	case KindChannel:
		return "Channel"
	}
	return "Item"
}

// TaxonomyItem is one revenue source, category, segment or channel. Its
// slug is unique within its industry type.
type TaxonomyItem struct {
	IndustryTypeSlug string    `json:"industryTypeSlug" db:"industry_type_slug"`
	Slug             string    `json:"slug" db:"slug"`
	Name             string    `json:"name" db:"name"`
	Description      *string   `json:"description" db:"description"`
	SortOrder        int       `json:"sortOrder" db:"sort_order"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}

// ListRequest is the bind target of list endpoints. Paging, sorting and
// filtering are read from the raw query string by the query package.
type ListRequest struct{}

func (r *ListRequest) Validate() error { return nil }

type CreateIndustryTypeRequest struct {
	Slug        string  `json:"slug" validate:"omitempty,max=64,slug"`
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (r *CreateIndustryTypeRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateIndustryTypeRequest struct {
	Slug        string  `param:"slug" json:"-" validate:"required"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

func (r *UpdateIndustryTypeRequest) Validate() error {
	return validation.Struct(r)
}

type ListTaxonomyRequest struct {
	Industry string       `param:"industry" json:"-" validate:"required"`
	Kind     TaxonomyKind `param:"kind" json:"-" validate:"required,oneof=sources categories segments channels"`
}

func (r *ListTaxonomyRequest) Validate() error {
	return validation.Struct(r)
}

type CreateTaxonomyItemRequest struct {
	Industry    string       `param:"industry" json:"-" validate:"required"`
	Kind        TaxonomyKind `param:"kind" json:"-" validate:"required,oneof=sources categories segments channels"`
	Slug        string       `json:"slug" validate:"omitempty,max=64,slug"`
	Name        string       `json:"name" validate:"required,max=120"`
	Description *string      `json:"description" validate:"omitempty,max=2000"`
	SortOrder   int          `json:"sortOrder" validate:"gte=0"`
}

func (r *CreateTaxonomyItemRequest) Validate() error {
	return validation.Struct(r)
}

type TaxonomyItemRequest struct {
	Industry string       `param:"industry" json:"-" validate:"required"`
	Kind     TaxonomyKind `param:"kind" json:"-" validate:"required,oneof=sources categories segments channels"`
	Slug     string       `param:"slug" json:"-" validate:"required"`
}

func (r *TaxonomyItemRequest) Validate() error {
	return validation.Struct(r)
}

type UpdateTaxonomyItemRequest struct {
	Industry    string       `param:"industry" json:"-" validate:"required"`
	Kind        TaxonomyKind `param:"kind" json:"-" validate:"required,oneof=sources categories segments channels"`
	Slug        string       `param:"slug" json:"-" validate:"required"`
	Name        *string      `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string      `json:"description" validate:"omitempty,max=2000"`
	SortOrder   *int         `json:"sortOrder" validate:"omitempty,gte=0"`
}

func (r *UpdateTaxonomyItemRequest) Validate() error {
	return validation.Struct(r)
}
