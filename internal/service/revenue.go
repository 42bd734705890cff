package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/directory/internal/errs"
	"github.com/deppfellow/directory/internal/lib/job"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/lib/utils"
	"github.com/deppfellow/directory/internal/model"
)

type RevenueStore interface {
	List(ctx context.Context, d query.Descriptor) ([]model.RevenueStream, int64, error)
	CompanyContact(ctx context.Context, id uuid.UUID) (*model.CompanyContact, error)
	IndustryName(ctx context.Context, slug string) (string, error)
	SourceName(ctx context.Context, industry, source string) (string, error)
	ExistingSlugs(ctx context.Context, kind model.TaxonomyKind, industry string, slugs []string) (map[string]bool, error)
	ReplaceTable(ctx context.Context, key model.RevenueKey, rows []model.RevenueRowInput) (int64, error)
	GetRows(ctx context.Context, key model.RevenueKey) ([]model.RevenueRow, error)
	SourceSummaries(ctx context.Context, companyID uuid.UUID, year int, industry string) ([]model.SourceSummary, error)
	YearlyStats(ctx context.Context, companyID uuid.UUID, year int, industry string) ([]model.SourceStats, error)
	ClearTable(ctx context.Context, companyID uuid.UUID, year int, source string) (int64, error)
}

// RevenueService maintains revenue tables: the rows a company reports for
// one (year, industry type, source), always replaced as a whole.
type RevenueService struct {
	store    RevenueStore
	notifier Notifier
}

func NewRevenueService(store RevenueStore, notifier Notifier) *RevenueService {
	return &RevenueService{store: store, notifier: notifier}
}

// tableNames holds the display names resolved while validating a key.
type tableNames struct {
	company  *model.CompanyContact
	industry string
	source   string
}

func (s *RevenueService) List(ctx context.Context, d query.Descriptor) (model.Response[[]model.RevenueStream], error) {
	logDropped(ctx, "revenue_stream", d)

	items, total, err := s.store.List(ctx, d)
	if err != nil {
		return model.Response[[]model.RevenueStream]{}, err
	}
	return model.Paginate(items, total, d.Page, d.Limit, ""), nil
}

// resolveKey checks that every part of key exists: the company (NotFound),
// the industry type and a source of that industry (InvalidReference).
func (s *RevenueService) resolveKey(ctx context.Context, key model.RevenueKey) (*tableNames, error) {
	company, err := s.store.CompanyContact(ctx, key.CompanyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFoundf("Company %s not found", key.CompanyID)
		}
		return nil, err
	}

	industry, err := s.store.IndustryName(ctx, key.IndustryTypeSlug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewInvalidReferenceError(
				fmt.Sprintf("Industry type %q does not exist", key.IndustryTypeSlug), "industry")
		}
		return nil, err
	}

	source, err := s.store.SourceName(ctx, key.IndustryTypeSlug, key.SourceSlug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewInvalidReferenceError(
				fmt.Sprintf("Source %q does not belong to industry type %q", key.SourceSlug, key.IndustryTypeSlug), "source")
		}
		return nil, err
	}

	return &tableNames{company: company, industry: industry, source: source}, nil
}

// rowReference is one taxonomy slug a row points at.
type rowReference struct {
	kind  model.TaxonomyKind
	field string
	slug  func(model.RevenueRowInput) string
}

var rowReferences = []rowReference{
	{kind: model.KindCategory, field: "categorySlug", slug: func(r model.RevenueRowInput) string { return r.CategorySlug }},
	{kind: model.KindSegment, field: "segmentSlug", slug: func(r model.RevenueRowInput) string { return r.SegmentSlug }},
	{kind: model.KindChannel, field: "channelSlug", slug: func(r model.RevenueRowInput) string { return r.ChannelSlug }},
}

// checkRows rejects duplicated combinations and slugs that are not items
// of the key's industry type. The first offending row is reported.
func (s *RevenueService) checkRows(ctx context.Context, industry string, rows []model.RevenueRowInput) error {
	known := make(map[model.TaxonomyKind]map[string]bool, len(rowReferences))
	for _, ref := range rowReferences {
		seen := make(map[string]bool, len(rows))
		slugs := make([]string, 0, len(rows))
		for _, row := range rows {
			if slug := ref.slug(row); !seen[slug] {
				seen[slug] = true
				slugs = append(slugs, slug)
			}
		}

		existing, err := s.store.ExistingSlugs(ctx, ref.kind, industry, slugs)
		if err != nil {
			return err
		}
		known[ref.kind] = existing
	}

	for i, row := range rows {
		for _, ref := range rowReferences {
			if slug := ref.slug(row); !known[ref.kind][slug] {
				return errs.NewInvalidReferenceError(
					fmt.Sprintf("%s %q does not belong to industry type %q", ref.kind.Singular(), slug, industry),
					fmt.Sprintf("rows[%d].%s", i, ref.field))
			}
		}
	}

	combinations := make(map[string]int, len(rows))
	for i, row := range rows {
		if first, ok := combinations[row.Combination()]; ok {
			return errs.NewConflictError(
				fmt.Sprintf("Rows %d and %d share the combination %s", first, i, row.Combination()), true, nil)
		}
		combinations[row.Combination()] = i
	}

	return nil
}

// UpsertTable validates req without side effects, replaces every row stored
// under its key in one transaction and returns the table read back after
// commit.
func (s *RevenueService) UpsertTable(ctx context.Context, req *model.UpsertRevenueTableRequest) (model.Response[*model.RevenueTable], error) {
	key := req.Key()
	logger := zerolog.Ctx(ctx).With().
		Str("company_id", key.CompanyID.String()).
		Int("year", key.Year).
		Str("industry_type_slug", key.IndustryTypeSlug).
		Str("source_slug", key.SourceSlug).
		Logger()

	names, err := s.resolveKey(ctx, key)
	if err != nil {
		return model.Response[*model.RevenueTable]{}, err
	}

	if err := s.checkRows(ctx, key.IndustryTypeSlug, req.Rows); err != nil {
		return model.Response[*model.RevenueTable]{}, err
	}

	inserted, err := s.store.ReplaceTable(ctx, key, req.Rows)
	if err != nil {
		return model.Response[*model.RevenueTable]{}, storeError(err)
	}

	logger.Info().Int64("rows", inserted).Msg("revenue table replaced")

	table, err := s.snapshot(ctx, key, names)
	if err != nil {
		return model.Response[*model.RevenueTable]{}, err
	}

	s.notifyUpdated(ctx, logger, table, names)

	return model.Success(table, "Revenue table saved"), nil
}

func (s *RevenueService) notifyUpdated(ctx context.Context, logger zerolog.Logger, table *model.RevenueTable, names *tableNames) {
	err := s.notifier.EnqueueRevenueTableUpdated(ctx, job.RevenueTableUpdatedPayload{
		CompanyID:        table.Key.CompanyID,
		CompanyName:      table.CompanyName,
		Year:             table.Key.Year,
		IndustryTypeSlug: table.Key.IndustryTypeSlug,
		IndustryTypeName: table.IndustryTypeName,
		SourceSlug:       table.Key.SourceSlug,
		SourceName:       table.SourceName,
		RowCount:         len(table.Rows),
		NotifyEmail:      utils.Deref(names.company.Email),
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to enqueue revenue table notification")
	}
}

func (s *RevenueService) snapshot(ctx context.Context, key model.RevenueKey, names *tableNames) (*model.RevenueTable, error) {
	rows, err := s.store.GetRows(ctx, key)
	if err != nil {
		return nil, err
	}

	sources, err := s.store.SourceSummaries(ctx, key.CompanyID, key.Year, key.IndustryTypeSlug)
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []model.RevenueRow{}
	}
	if sources == nil {
		sources = []model.SourceSummary{}
	}

	table := &model.RevenueTable{
		Key:              key,
		CompanyName:      names.company.Name,
		IndustryTypeName: names.industry,
		SourceName:       names.source,
		Rows:             rows,
		Sources:          sources,
	}
	table.ComputeTotals()
	return table, nil
}

// GetTable returns the table stored under the key of req. A key without
// rows yields an empty table.
func (s *RevenueService) GetTable(ctx context.Context, req *model.RevenueTableRequest) (model.Response[*model.RevenueTable], error) {
	key := req.Key()

	names, err := s.resolveKey(ctx, key)
	if err != nil {
		return model.Response[*model.RevenueTable]{}, err
	}

	table, err := s.snapshot(ctx, key, names)
	if err != nil {
		return model.Response[*model.RevenueTable]{}, err
	}
	return model.Success(table, ""), nil
}

// ClearTable deletes the rows of a source for one company and year. It
// fails with NotFound when there was nothing to delete.
func (s *RevenueService) ClearTable(ctx context.Context, req *model.ClearRevenueTableRequest) (model.Response[model.ClearResult], error) {
	deleted, err := s.store.ClearTable(ctx, req.CompanyID, req.Year, req.SourceSlug)
	if err != nil {
		return model.Response[model.ClearResult]{}, storeError(err)
	}

	if deleted == 0 {
		return model.Response[model.ClearResult]{}, errs.NotFoundf(
			"No revenue rows for source %q in %d", req.SourceSlug, req.Year)
	}

	zerolog.Ctx(ctx).Info().
		Str("company_id", req.CompanyID.String()).
		Int("year", req.Year).
		Str("source_slug", req.SourceSlug).
		Int64("deleted", deleted).
		Msg("revenue table cleared")

	return model.Success(model.ClearResult{DeletedCount: deleted}, "Revenue table cleared"), nil
}

func (s *RevenueService) ensureCompany(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.CompanyContact(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errs.NotFoundf("Company %s not found", id)
		}
		return err
	}
	return nil
}

// AvailableSources lists the sources a company has rows for in a year.
func (s *RevenueService) AvailableSources(ctx context.Context, req *model.RevenueYearRequest) (model.Response[[]model.SourceSummary], error) {
	if err := s.ensureCompany(ctx, req.CompanyID); err != nil {
		return model.Response[[]model.SourceSummary]{}, err
	}

	sources, err := s.store.SourceSummaries(ctx, req.CompanyID, req.Year, req.Industry)
	if err != nil {
		return model.Response[[]model.SourceSummary]{}, err
	}
	if sources == nil {
		sources = []model.SourceSummary{}
	}
	return model.Success(sources, ""), nil
}

// YearlyStats aggregates every source of a company for a year.
func (s *RevenueService) YearlyStats(ctx context.Context, req *model.RevenueYearRequest) (model.Response[*model.YearlyStats], error) {
	if err := s.ensureCompany(ctx, req.CompanyID); err != nil {
		return model.Response[*model.YearlyStats]{}, err
	}

	sources, err := s.store.YearlyStats(ctx, req.CompanyID, req.Year, req.Industry)
	if err != nil {
		return model.Response[*model.YearlyStats]{}, err
	}
	if sources == nil {
		sources = []model.SourceStats{}
	}

	stats := &model.YearlyStats{
		CompanyID: req.CompanyID,
		Year:      req.Year,
		Industry:  req.Industry,
		Sources:   sources,
		SumValue:  decimal.Zero,
	}
	for _, source := range sources {
		stats.RowCount += source.RowCount
		stats.SumValue = stats.SumValue.Add(source.SumValue)
	}
	return model.Success(stats, ""), nil
}
