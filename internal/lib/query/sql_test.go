package query

import (
	"net/url"
	"strconv"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = Columns{
	"name":      "name",
	"country":   "country",
	"year":      "founded_year",
	"createdAt": "created_at",
}

func render(t *testing.T, s sq.Sqlizer) (string, []any) {
	t.Helper()
	require.NotNil(t, s)
	sql, args, err := s.ToSql()
	require.NoError(t, err)
	return sql, args
}

func TestWhere_Operators(t *testing.T) {
	tests := []struct {
		name string
		cond Condition
		sql  string
		args []any
	}{
		{"equals", Eq{Field: "country", Value: "DE"}, "country = ?", []any{"DE"}},
		{"null", Eq{Field: "country", Value: nil}, "country IS NULL", nil},
		{"in", In{Field: "country", Values: []any{"DE", "FR"}}, "country IN (?,?)", []any{"DE", "FR"}},
		{"not", Compare{Field: "country", Op: OpNot, Value: "DE"}, "country <> ?", []any{"DE"}},
		{"not null", Compare{Field: "country", Op: OpNot, Value: nil}, "country IS NOT NULL", nil},
		{"gt", Compare{Field: "year", Op: OpGt, Value: 2000}, "founded_year > ?", []any{2000}},
		{"gte", Compare{Field: "year", Op: OpGte, Value: 2000}, "founded_year >= ?", []any{2000}},
		{"lt", Compare{Field: "year", Op: OpLt, Value: 2000}, "founded_year < ?", []any{2000}},
		{"lte", Compare{Field: "year", Op: OpLte, Value: 2000}, "founded_year <= ?", []any{2000}},
		{"contains", Compare{Field: "name", Op: OpContains, Value: "50%_off"}, "name LIKE ?", []any{`%50\%\_off%`}},
		{"startsWith", Compare{Field: "name", Op: OpStartsWith, Value: "Ac"}, "name LIKE ?", []any{"Ac%"}},
		{"endsWith", Compare{Field: "name", Op: OpEndsWith, Value: "me"}, "name LIKE ?", []any{"%me"}},
		{"search", Search{Field: "name", Term: "acme"}, "name ILIKE ?", []any{"%acme%"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := render(t, Where(tt.cond, testColumns))
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestWhere_FromDescriptor(t *testing.T) {
	d := Parse(url.Values{
		"filter": {`{"country":["DE","FR"],"year":{"gte":2010}}`},
		"search": {"acme"},
	})

	sql, args := render(t, Where(BuildFilter(d, []string{"name", "country"}), testColumns))
	assert.Equal(t, "((country IN (?,?) AND founded_year >= ?) AND (name ILIKE ? OR country ILIKE ?))", sql)
	assert.Equal(t, []any{"DE", "FR", int64(2010), "%acme%", "%acme%"}, args)
}

func TestWhere_UnknownFieldsDropped(t *testing.T) {
	d := Parse(url.Values{"filter": {`{"password":"x"}`}, "search": {"acme"}})

	assert.Nil(t, Where(BuildFilter(d, []string{"secret"}), testColumns))
	assert.Nil(t, Where(And{}, testColumns))
	assert.Nil(t, Where(nil, testColumns))
	assert.Nil(t, Where(Compare{Field: "year", Op: OpGt, Value: nil}, testColumns))
}

func TestOrderBy(t *testing.T) {
	fallback := Sort{Field: "createdAt", Direction: Desc}

	assert.Equal(t, "name ASC", OrderBy(Sort{Field: "name", Direction: Asc}, testColumns, fallback))
	assert.Equal(t, "founded_year DESC", OrderBy(Sort{Field: "year", Direction: Desc}, testColumns, fallback))
	assert.Equal(t, "created_at DESC", OrderBy(Sort{Field: "nope", Direction: Asc}, testColumns, fallback))
	assert.Equal(t, "", OrderBy(Sort{Field: "nope"}, testColumns, Sort{Field: "also-nope"}))
}

func TestApplyAndPage(t *testing.T) {
	d := Parse(url.Values{"page": {"3"}, "limit": {"20"}, "filter": {`{"country":"DE"}`}})
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Dollar).
		Select("id").
		From("companies")

	sql, args, err := Page(Apply(builder, BuildFilter(d, nil), testColumns), d).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM companies WHERE ((country = $1)) LIMIT 20 OFFSET 40", sql)
	assert.Equal(t, []any{"DE"}, args)

	sql, _, err = Apply(builder, BuildFilter(Descriptor{}, nil), testColumns).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM companies", sql)
}

func TestPage_HugePageRendersBoundedOffset(t *testing.T) {
	d := Parse(url.Values{"page": {"9223372036854775807"}})
	sql, _, err := Page(sq.Select("id").From("companies"), d).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM companies LIMIT 10 OFFSET "+strconv.Itoa((MaxPage-1)*DefaultLimit), sql)
}
