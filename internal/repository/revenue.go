package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/deppfellow/directory/internal/database"
	"github.com/deppfellow/directory/internal/lib/query"
	"github.com/deppfellow/directory/internal/model"
)

const revenueTable = "revenue_streams"

// revenueCopyColumns is the column order of the rows fed to COPY.
var revenueCopyColumns = []string{
	"company_id", "year", "industry_type_slug", "source_slug",
	"category_slug", "segment_slug", "channel_slug",
	"percent", "ctr_percent", "value",
}

type RevenueRepository struct {
	db      database.Pool
	streams *table[model.RevenueStream]
}

func NewRevenueRepository(db database.Pool) *RevenueRepository {
	return &RevenueRepository{
		db: db,
		streams: &table[model.RevenueStream]{
			db:   db,
			name: revenueTable,
			columns: []string{
				"id", "company_id", "year", "industry_type_slug", "source_slug", "category_slug",
				"segment_slug", "channel_slug", "percent", "ctr_percent", "value", "created_at", "updated_at",
			},
			fields: query.Columns{
				"id":               "id",
				"companyId":        "company_id",
				"year":             "year",
				"industryTypeSlug": "industry_type_slug",
				"sourceSlug":       "source_slug",
				"categorySlug":     "category_slug",
				"segmentSlug":      "segment_slug",
				"channelSlug":      "channel_slug",
				"percent":          "percent",
				"ctrPercent":       "ctr_percent",
				"value":            "value",
				"createdAt":        "created_at",
			},
			defaultSort: query.Sort{Field: "createdAt", Direction: query.Desc},
			tieBreaker:  "id",
		},
	}
}

func keyWhere(prefix string, key model.RevenueKey) sq.Eq {
	return sq.Eq{
		prefix + "company_id":         key.CompanyID,
		prefix + "year":               key.Year,
		prefix + "industry_type_slug": key.IndustryTypeSlug,
		prefix + "source_slug":        key.SourceSlug,
	}
}

func (r *RevenueRepository) List(ctx context.Context, d query.Descriptor) ([]model.RevenueStream, int64, error) {
	return r.streams.list(ctx, d, nil)
}

func (r *RevenueRepository) lookupName(ctx context.Context, tableName string, where sq.Eq) (string, error) {
	sql, args, err := psql.Select("name").From(tableName).Where(where).ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build %s lookup: %w", tableName, err)
	}

	var name string
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", notFound(tableName)
		}
		return "", fmt.Errorf("failed to look up %s: %w", tableName, err)
	}
	return name, nil
}

// CompanyContact returns the name and contact address of the company, or a
// not-found error.
func (r *RevenueRepository) CompanyContact(ctx context.Context, id uuid.UUID) (*model.CompanyContact, error) {
	sql, args, err := psql.Select("name", "email").From("companies").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build company lookup: %w", err)
	}

	var contact model.CompanyContact
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&contact.Name, &contact.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notFound("companies")
		}
		return nil, fmt.Errorf("failed to look up company: %w", err)
	}
	return &contact, nil
}

func (r *RevenueRepository) IndustryName(ctx context.Context, slug string) (string, error) {
	return r.lookupName(ctx, "industry_types", sq.Eq{"slug": slug})
}

func (r *RevenueRepository) SourceName(ctx context.Context, industry, source string) (string, error) {
	return r.lookupName(ctx, model.KindSource.Table(), sq.Eq{"industry_type_slug": industry, "slug": source})
}

// ExistingSlugs returns which of slugs exist as items of kind within the
// industry type.
func (r *RevenueRepository) ExistingSlugs(ctx context.Context, kind model.TaxonomyKind, industry string, slugs []string) (map[string]bool, error) {
	found := make(map[string]bool, len(slugs))
	if len(slugs) == 0 {
		return found, nil
	}

	sql, args, err := psql.Select("slug").
		From(kind.Table()).
		Where(sq.Eq{"industry_type_slug": industry}).
		Where("slug = ANY(?)", slugs).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s lookup: %w", kind.Table(), err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", kind.Table(), err)
	}

	existing, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", kind.Table(), err)
	}
	for _, slug := range existing {
		found[slug] = true
	}
	return found, nil
}

// ReplaceTable swaps every row stored under key for rows in a single
// transaction. Writers of the same key are serialized by a transaction
// scoped advisory lock, so readers see either the old or the new table.
func (r *RevenueRepository) ReplaceTable(ctx context.Context, key model.RevenueKey, rows []model.RevenueRowInput) (int64, error) {
	var inserted int64

	err := database.WithTx(ctx, r.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", key.LockKey()); err != nil {
			return fmt.Errorf("failed to lock revenue table: %w", err)
		}

		sql, args, err := psql.Delete(revenueTable).Where(keyWhere("", key)).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build revenue delete: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("failed to delete revenue rows: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		inserted, err = tx.CopyFrom(ctx, pgx.Identifier{revenueTable}, revenueCopyColumns,
			pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
				return copyRow(key, rows[i]), nil
			}))
		if err != nil {
			return fmt.Errorf("failed to copy revenue rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

func copyRow(key model.RevenueKey, row model.RevenueRowInput) []any {
	value := pgtype.Numeric{}
	if row.Value != nil {
		value = numeric(*row.Value)
	}

	return []any{
		key.CompanyID,
		int32(key.Year),
		key.IndustryTypeSlug,
		key.SourceSlug,
		row.CategorySlug,
		row.SegmentSlug,
		row.ChannelSlug,
		numeric(decimal.NewFromFloat(row.Percent)),
		numeric(decimal.NewFromFloat(row.CtrPercent)),
		value,
	}
}

// numeric converts d for the binary COPY protocol.
func numeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// GetRows returns the rows stored under key with the display names of
// their category, segment and channel.
func (r *RevenueRepository) GetRows(ctx context.Context, key model.RevenueKey) ([]model.RevenueRow, error) {
	sql, args, err := psql.Select(
		"rs.id",
		"rs.category_slug", "c.name AS category_name",
		"rs.segment_slug", "sg.name AS segment_name",
		"rs.channel_slug", "ch.name AS channel_name",
		"rs.percent", "rs.ctr_percent", "rs.value",
	).
		From(revenueTable+" rs").
		Join("revenue_categories c ON c.industry_type_slug = rs.industry_type_slug AND c.slug = rs.category_slug").
		Join("revenue_segments sg ON sg.industry_type_slug = rs.industry_type_slug AND sg.slug = rs.segment_slug").
		Join("revenue_channels ch ON ch.industry_type_slug = rs.industry_type_slug AND ch.slug = rs.channel_slug").
		Where(keyWhere("rs.", key)).
		OrderBy("c.sort_order", "c.name", "sg.sort_order", "sg.name", "ch.sort_order", "ch.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build revenue rows query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue rows: %w", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.RevenueRow])
	if err != nil {
		return nil, fmt.Errorf("failed to scan revenue rows: %w", err)
	}
	return result, nil
}

func yearWhere(companyID uuid.UUID, year int, industry string) sq.Eq {
	where := sq.Eq{"rs.company_id": companyID, "rs.year": year}
	if industry != "" {
		where["rs.industry_type_slug"] = industry
	}
	return where
}

// SourceSummaries counts the rows of each source a company has data for
// in year, optionally within one industry type.
func (r *RevenueRepository) SourceSummaries(ctx context.Context, companyID uuid.UUID, year int, industry string) ([]model.SourceSummary, error) {
	sql, args, err := psql.Select(
		"rs.industry_type_slug", "rs.source_slug", "s.name AS source_name", "COUNT(*) AS row_count",
	).
		From(revenueTable+" rs").
		Join("revenue_sources s ON s.industry_type_slug = rs.industry_type_slug AND s.slug = rs.source_slug").
		Where(yearWhere(companyID, year, industry)).
		GroupBy("rs.industry_type_slug", "rs.source_slug", "s.name", "s.sort_order").
		OrderBy("rs.industry_type_slug", "s.sort_order", "s.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build source summary query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query source summaries: %w", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SourceSummary])
	if err != nil {
		return nil, fmt.Errorf("failed to scan source summaries: %w", err)
	}
	return result, nil
}

// YearlyStats aggregates the rows of each source for year.
func (r *RevenueRepository) YearlyStats(ctx context.Context, companyID uuid.UUID, year int, industry string) ([]model.SourceStats, error) {
	sql, args, err := psql.Select(
		"rs.industry_type_slug",
		"rs.source_slug",
		"s.name AS source_name",
		"COUNT(*) AS row_count",
		"COALESCE(SUM(rs.percent), 0)::float8 AS sum_percent",
		"COALESCE(AVG(rs.percent), 0)::float8 AS avg_percent",
		"COALESCE(AVG(rs.ctr_percent), 0)::float8 AS avg_ctr_percent",
		"COALESCE(SUM(rs.value), 0) AS sum_value",
	).
		From(revenueTable+" rs").
		Join("revenue_sources s ON s.industry_type_slug = rs.industry_type_slug AND s.slug = rs.source_slug").
		Where(yearWhere(companyID, year, industry)).
		GroupBy("rs.industry_type_slug", "rs.source_slug", "s.name", "s.sort_order").
		OrderBy("rs.industry_type_slug", "s.sort_order", "s.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build yearly stats query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query yearly stats: %w", err)
	}

	result, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.SourceStats])
	if err != nil {
		return nil, fmt.Errorf("failed to scan yearly stats: %w", err)
	}
	return result, nil
}

// ClearTable deletes the rows of source for (companyID, year) across
// industry types and reports how many were removed.
func (r *RevenueRepository) ClearTable(ctx context.Context, companyID uuid.UUID, year int, source string) (int64, error) {
	sql, args, err := psql.Delete(revenueTable).
		Where(sq.Eq{"company_id": companyID, "year": year, "source_slug": source}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build revenue clear: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to clear revenue rows: %w", err)
	}
	return tag.RowsAffected(), nil
}
