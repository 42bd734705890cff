package repository

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/directory/internal/database"
	"github.com/deppfellow/directory/internal/lib/query"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// table is the generic CRUD plumbing shared by the entity repositories.
type table[T any] struct {
	db      database.Pool
	name    string
	columns []string

	// Query surface of List: filterable and sortable fields mapped to
	// columns, the fields free-text search looks at, and the order used
	// when the request names none. tieBreaker keeps paging stable.
	fields      query.Columns
	searchable  []string
	defaultSort query.Sort
	tieBreaker  string
}

func notFound(tableName string) error {
	return fmt.Errorf("table:%s: %w", tableName, pgx.ErrNoRows)
}

func (t *table[T]) collectOne(ctx context.Context, db database.Querier, builder sq.Sqlizer) (*T, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", t.name, err)
	}

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", t.name, err)
	}

	item, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("table:%s: %w", t.name, err)
	}
	return &item, nil
}

func (t *table[T]) get(ctx context.Context, where sq.Eq) (*T, error) {
	return t.collectOne(ctx, t.db, psql.Select(t.columns...).From(t.name).Where(where))
}

func (t *table[T]) insert(ctx context.Context, values map[string]any) (*T, error) {
	builder := psql.Insert(t.name).
		SetMap(values).
		Suffix("RETURNING " + strings.Join(t.columns, ", "))
	return t.collectOne(ctx, t.db, builder)
}

// update applies set to the row matching where. An empty set is a read.
func (t *table[T]) update(ctx context.Context, where sq.Eq, set map[string]any) (*T, error) {
	if len(set) == 0 {
		return t.get(ctx, where)
	}

	builder := psql.Update(t.name).
		SetMap(set).
		Where(where).
		Suffix("RETURNING " + strings.Join(t.columns, ", "))
	return t.collectOne(ctx, t.db, builder)
}

func (t *table[T]) delete(ctx context.Context, where sq.Eq) error {
	sql, args, err := psql.Delete(t.name).Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build %s delete: %w", t.name, err)
	}

	tag, err := t.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", t.name, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(t.name)
	}
	return nil
}

// list runs the count and the page query of d. scope, when set, is a
// fixed predicate the caller cannot override (e.g. the parent industry).
func (t *table[T]) list(ctx context.Context, d query.Descriptor, scope sq.Sqlizer) ([]T, int64, error) {
	cond := query.BuildFilter(d, t.searchable)

	count := psql.Select("COUNT(*)").From(t.name)
	page := psql.Select(t.columns...).From(t.name)
	if scope != nil {
		count = count.Where(scope)
		page = page.Where(scope)
	}
	count = query.Apply(count, cond, t.fields)
	page = query.Apply(page, cond, t.fields)

	if order := query.OrderBy(query.BuildSort(d, t.defaultSort), t.fields, t.defaultSort); order != "" {
		page = page.OrderBy(order)
	}
	if t.tieBreaker != "" {
		page = page.OrderBy(t.tieBreaker)
	}
	page = query.Page(page, d)

	countSQL, countArgs, err := count.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build %s count: %w", t.name, err)
	}

	var total int64
	if err := t.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count %s: %w", t.name, err)
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	pageSQL, pageArgs, err := page.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build %s page: %w", t.name, err)
	}

	rows, err := t.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list %s: %w", t.name, err)
	}

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan %s: %w", t.name, err)
	}
	return items, total, nil
}

// setIf adds column = *value to set when value is non-nil.
func setIf[V any](set map[string]any, column string, value *V) {
	if value != nil {
		set[column] = *value
	}
}
