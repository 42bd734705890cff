package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/directory/internal/validation"
)

// RevenueKey identifies one revenue table: the set of rows replaced as a
// unit by an upsert.
type RevenueKey struct {
	CompanyID        uuid.UUID `json:"companyId"`
	Year             int       `json:"year"`
	IndustryTypeSlug string    `json:"industryTypeSlug"`
	SourceSlug       string    `json:"sourceSlug"`
}

// LockKey is the string hashed into the advisory lock serializing writers
// of the table.
func (k RevenueKey) LockKey() string {
	return fmt.Sprintf("revenue:%s:%d:%s:%s", k.CompanyID, k.Year, k.IndustryTypeSlug, k.SourceSlug)
}

// RevenueStream is one stored row of a revenue table.
type RevenueStream struct {
	ID               uuid.UUID           `json:"id" db:"id"`
	CompanyID        uuid.UUID           `json:"companyId" db:"company_id"`
	Year             int                 `json:"year" db:"year"`
	IndustryTypeSlug string              `json:"industryTypeSlug" db:"industry_type_slug"`
	SourceSlug       string              `json:"sourceSlug" db:"source_slug"`
	CategorySlug     string              `json:"categorySlug" db:"category_slug"`
	SegmentSlug      string              `json:"segmentSlug" db:"segment_slug"`
	ChannelSlug      string              `json:"channelSlug" db:"channel_slug"`
	Percent          float64             `json:"percent" db:"percent"`
	CtrPercent       float64             `json:"ctrPercent" db:"ctr_percent"`
	Value            decimal.NullDecimal `json:"value" db:"value"`
	CreatedAt        time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time           `json:"updatedAt" db:"updated_at"`
}

// RevenueRowInput is one row of an upserted table.
type RevenueRowInput struct {
	CategorySlug string           `json:"categorySlug" validate:"required"`
	SegmentSlug  string           `json:"segmentSlug" validate:"required"`
	ChannelSlug  string           `json:"channelSlug" validate:"required"`
	Percent      float64          `json:"percent" validate:"gte=0,lte=100,decimals=2"`
	CtrPercent   float64          `json:"ctrPercent" validate:"gte=0,lte=100,decimals=2"`
	Value        *decimal.Decimal `json:"value" validate:"omitempty,decimals=2"`
}

// Combination is the (category, segment, channel) triple that must be
// unique within one table.
func (r RevenueRowInput) Combination() string {
	return r.CategorySlug + "/" + r.SegmentSlug + "/" + r.ChannelSlug
}

type RevenueTableRequest struct {
	CompanyID        uuid.UUID `param:"id" json:"-" validate:"required"`
	Year             int       `param:"year" json:"-" validate:"min=1900,max=2100"`
	IndustryTypeSlug string    `param:"industry" json:"-" validate:"required"`
	SourceSlug       string    `param:"source" json:"-" validate:"required"`
}

func (r *RevenueTableRequest) Validate() error {
	return validation.Struct(r)
}

func (r *RevenueTableRequest) Key() RevenueKey {
	return RevenueKey{
		CompanyID:        r.CompanyID,
		Year:             r.Year,
		IndustryTypeSlug: r.IndustryTypeSlug,
		SourceSlug:       r.SourceSlug,
	}
}

// UpsertRevenueTableRequest replaces every row of the table addressed by
// the path with Rows.
type UpsertRevenueTableRequest struct {
	RevenueTableRequest
	Rows []RevenueRowInput `json:"rows" validate:"dive"`
}

func (r *UpsertRevenueTableRequest) Validate() error {
	return validation.Struct(r)
}

type ClearRevenueTableRequest struct {
	CompanyID  uuid.UUID `param:"id" json:"-" validate:"required"`
	Year       int       `param:"year" json:"-" validate:"min=1900,max=2100"`
	SourceSlug string    `param:"source" json:"-" validate:"required"`
}

func (r *ClearRevenueTableRequest) Validate() error {
	return validation.Struct(r)
}

// RevenueYearRequest addresses the tables of a company for one year,
// optionally narrowed to one industry type.
type RevenueYearRequest struct {
	CompanyID uuid.UUID `param:"id" json:"-" validate:"required"`
	Year      int       `param:"year" json:"-" validate:"min=1900,max=2100"`
	Industry  string    `query:"industry" json:"-"`
}

func (r *RevenueYearRequest) Validate() error {
	return validation.Struct(r)
}

// RevenueRow is a stored row enriched with display names.
type RevenueRow struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	CategorySlug string              `json:"categorySlug" db:"category_slug"`
	CategoryName string              `json:"categoryName" db:"category_name"`
	SegmentSlug  string              `json:"segmentSlug" db:"segment_slug"`
	SegmentName  string              `json:"segmentName" db:"segment_name"`
	ChannelSlug  string              `json:"channelSlug" db:"channel_slug"`
	ChannelName  string              `json:"channelName" db:"channel_name"`
	Percent      float64             `json:"percent" db:"percent"`
	CtrPercent   float64             `json:"ctrPercent" db:"ctr_percent"`
	Value        decimal.NullDecimal `json:"value" db:"value"`
}

// SourceSummary counts the rows stored under one source.
type SourceSummary struct {
	IndustryTypeSlug string `json:"industryTypeSlug" db:"industry_type_slug"`
	SourceSlug       string `json:"sourceSlug" db:"source_slug"`
	SourceName       string `json:"sourceName" db:"source_name"`
	RowCount         int64  `json:"rowCount" db:"row_count"`
}

// RevenueTotals aggregates the rows of one table.
type RevenueTotals struct {
	RowCount   int             `json:"rowCount"`
	Percent    float64         `json:"percent"`
	CtrPercent float64         `json:"ctrPercent"`
	Value      decimal.Decimal `json:"value"`
}

// RevenueTable is the snapshot of one table returned after reads and
// upserts.
type RevenueTable struct {
	Key              RevenueKey      `json:"key"`
	CompanyName      string          `json:"companyName"`
	IndustryTypeName string          `json:"industryTypeName"`
	SourceName       string          `json:"sourceName"`
	Rows             []RevenueRow    `json:"rows"`
	Sources          []SourceSummary `json:"sources"`
	Totals           RevenueTotals   `json:"totals"`
}

// ComputeTotals sums the rows of t into t.Totals.
func (t *RevenueTable) ComputeTotals() {
	totals := RevenueTotals{RowCount: len(t.Rows), Value: decimal.Zero}
	for _, row := range t.Rows {
		totals.Percent += row.Percent
		totals.CtrPercent += row.CtrPercent
		if row.Value.Valid {
			totals.Value = totals.Value.Add(row.Value.Decimal)
		}
	}
	t.Totals = totals
}

// ClearResult reports how many rows a clear removed.
type ClearResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// SourceStats aggregates one source's rows within a year.
type SourceStats struct {
	IndustryTypeSlug string          `json:"industryTypeSlug" db:"industry_type_slug"`
	SourceSlug       string          `json:"sourceSlug" db:"source_slug"`
	SourceName       string          `json:"sourceName" db:"source_name"`
	RowCount         int64           `json:"rowCount" db:"row_count"`
	SumPercent       float64         `json:"sumPercent" db:"sum_percent"`
	AvgPercent       float64         `json:"avgPercent" db:"avg_percent"`
	AvgCtrPercent    float64         `json:"avgCtrPercent" db:"avg_ctr_percent"`
	SumValue         decimal.Decimal `json:"sumValue" db:"sum_value"`
}

// YearlyStats aggregates every table of a company for one year.
type YearlyStats struct {
	CompanyID uuid.UUID       `json:"companyId"`
	Year      int             `json:"year"`
	Industry  string          `json:"industryTypeSlug,omitempty"`
	Sources   []SourceStats   `json:"sources"`
	RowCount  int64           `json:"rowCount"`
	SumValue  decimal.Decimal `json:"sumValue"`
}
