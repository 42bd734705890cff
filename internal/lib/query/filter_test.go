package query

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matches evaluates cond against an in-memory record. It backs the
// storage-agnostic checks below.
func matches(cond Condition, record map[string]any) bool {
	switch c := cond.(type) {
	case And:
		for _, child := range c {
			if !matches(child, record) {
				return false
			}
		}
		return true
	case Or:
		for _, child := range c {
			if matches(child, record) {
				return true
			}
		}
		return false
	case Eq:
		return fmt.Sprint(record[c.Field]) == fmt.Sprint(c.Value)
	case In:
		for _, v := range c.Values {
			if fmt.Sprint(record[c.Field]) == fmt.Sprint(v) {
				return true
			}
		}
		return false
	case Search:
		value, _ := record[c.Field].(string)
		return strings.Contains(strings.ToLower(value), strings.ToLower(c.Term))
	case Compare:
		value := fmt.Sprint(record[c.Field])
		operand := fmt.Sprint(c.Value)
		switch c.Op {
		case OpEquals:
			return value == operand
		case OpNot:
			return value != operand
		case OpContains:
			return strings.Contains(value, operand)
		case OpStartsWith:
			return strings.HasPrefix(value, operand)
		case OpEndsWith:
			return strings.HasSuffix(value, operand)
		}
	}
	return false
}

func TestBuildFilter_Empty(t *testing.T) {
	cond := BuildFilter(Descriptor{}, nil)
	assert.Equal(t, And{}, cond)
	assert.True(t, matches(cond, map[string]any{"name": "anything"}))
}

func TestBuildFilter_Shapes(t *testing.T) {
	d := Parse(url.Values{"filter": {`{"country":"DE","size":["S","M"],"year":{"gte":2020,"lte":2024}}`}})

	cond := BuildFilter(d, nil)
	assert.Equal(t, And{
		And{
			Eq{Field: "country", Value: "DE"},
			In{Field: "size", Values: []any{"S", "M"}},
			Compare{Field: "year", Op: OpGte, Value: int64(2020)},
			Compare{Field: "year", Op: OpLte, Value: int64(2024)},
		},
	}, cond)
}

func TestBuildFilter_SetEqualsUnionOfEqualities(t *testing.T) {
	records := []map[string]any{
		{"country": "DE"},
		{"country": "FR"},
		{"country": "IT"},
		{"country": "ES"},
	}

	inSet := BuildFilter(Parse(url.Values{"filter": {`{"country":["DE","IT"]}`}}), nil)
	reordered := BuildFilter(Parse(url.Values{"filter": {`{"country":["IT","DE"]}`}}), nil)
	union := Or{Eq{Field: "country", Value: "DE"}, Eq{Field: "country", Value: "IT"}}

	for _, record := range records {
		assert.Equal(t, matches(union, record), matches(inSet, record), record)
		assert.Equal(t, matches(inSet, record), matches(reordered, record), record)
	}
}

func TestBuildFilter_SearchAcrossFields(t *testing.T) {
	d := Descriptor{Search: "abc"}
	cond := BuildFilter(d, []string{"name", "desc"})

	assert.True(t, matches(cond, map[string]any{"name": "xxABCxx", "desc": ""}))
	assert.True(t, matches(cond, map[string]any{"name": "", "desc": "the aBc corp"}))
	assert.False(t, matches(cond, map[string]any{"name": "ab c", "desc": "xyz"}))
}

func TestBuildFilter_SearchIgnoredWithoutFields(t *testing.T) {
	cond := BuildFilter(Descriptor{Search: "abc"}, nil)
	assert.Equal(t, And{}, cond)
}

func TestBuildFilter_FilterAndSearchCombined(t *testing.T) {
	d := Parse(url.Values{
		"filter": {`{"country":"DE"}`},
		"search": {"tech"},
	})
	cond := BuildFilter(d, []string{"name"})

	require.Len(t, cond, 2)
	assert.True(t, matches(cond, map[string]any{"country": "DE", "name": "Fintech GmbH"}))
	assert.False(t, matches(cond, map[string]any{"country": "FR", "name": "Fintech SA"}))
	assert.False(t, matches(cond, map[string]any{"country": "DE", "name": "Bakery"}))
}

func TestBuildSort(t *testing.T) {
	fallback := Sort{Field: "createdAt", Direction: Desc}

	assert.Equal(t, fallback, BuildSort(Descriptor{}, fallback))
	assert.Equal(t,
		Sort{Field: "name", Direction: Asc},
		BuildSort(Parse(url.Values{"sort": {"name:bogus"}}), fallback),
	)
}
