// Package query turns list-endpoint request parameters into a normalized
// Descriptor, builds storage-agnostic filter and sort conditions from it,
// and renders those conditions as Postgres SQL.
//
// Parsing is permissive: malformed numbers fall back to defaults and
// unrecognized filter operators are dropped (and reported in
// Descriptor.Dropped) instead of failing the request.
package query

import (
	"encoding/json"
	"errors"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit far from overflowing the OFFSET.
	MaxPage = math.MaxInt32
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort is a single ordering directive on an API field.
type Sort struct {
	Field     string
	Direction Direction
}

// Operator is a filter comparison operator accepted in the filter vocabulary.
type Operator string

const (
	OpEquals     Operator = "equals"
	OpNot        Operator = "not"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
)

var operators = map[Operator]struct{}{
	OpEquals:     {},
	OpNot:        {},
	OpGt:         {},
	OpGte:        {},
	OpLt:         {},
	OpLte:        {},
	OpContains:   {},
	OpStartsWith: {},
	OpEndsWith:   {},
}

// Valid reports whether o belongs to the operator vocabulary.
func (o Operator) Valid() bool {
	_, ok := operators[o]
	return ok
}

// FilterKind tells which shape a FieldFilter carries.
type FilterKind int

const (
	KindScalar FilterKind = iota
	KindSet
	KindOperators
)

// OperatorValue is one operator clause of an operator-object filter.
type OperatorValue struct {
	Op    Operator
	Value any
}

// FieldFilter is the parsed form of one entry of the filter mapping.
type FieldFilter struct {
	Field     string
	Kind      FilterKind
	Value     any             // KindScalar
	Values    []any           // KindSet
	Operators []OperatorValue // KindOperators, ordered by operator name
}

// Descriptor is the normalized query of one list request.
type Descriptor struct {
	Page    int
	Limit   int
	Search  string
	Sort    *Sort
	Filters []FieldFilter // ordered by field name

	// Dropped lists "field.operator" pairs that were ignored because the
	// operator is not part of the vocabulary.
	Dropped []string
}

// Offset is the number of rows skipped before the requested page. It
// saturates instead of wrapping for hand-built descriptors.
func (d Descriptor) Offset() int {
	if d.Page <= 1 || d.Limit < 1 {
		return 0
	}
	if d.Page-1 > math.MaxInt/d.Limit {
		return math.MaxInt
	}
	return (d.Page - 1) * d.Limit
}

// Filter returns the filter for field, if any.
func (d Descriptor) Filter(field string) (FieldFilter, bool) {
	for _, f := range d.Filters {
		if f.Field == field {
			return f, true
		}
	}
	return FieldFilter{}, false
}

// Parse builds a Descriptor from raw request parameters. It never fails.
//
// The filter mapping is read from a JSON object in "filter" and from
// bracket keys ("filter[year][gte]=2020", "filter[country][]=DE");
// bracket entries win on conflicting fields.
func Parse(values url.Values) Descriptor {
	d := Descriptor{
		Page:   positiveInt(values.Get("page"), DefaultPage, MaxPage),
		Limit:  positiveInt(values.Get("limit"), DefaultLimit, MaxLimit),
		Search: strings.TrimSpace(values.Get("search")),
		Sort:   parseSort(values.Get("sort")),
	}

	raw := map[string]any{}
	if encoded := strings.TrimSpace(values.Get("filter")); encoded != "" {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(encoded), &decoded); err == nil {
			for field, value := range decoded {
				raw[field] = value
			}
		}
	}
	mergeBracketFilters(values, raw)

	d.Filters, d.Dropped = normalizeFilters(raw)
	return d
}

// positiveInt parses raw into [1, upper]. Numbers too large for an int
// are clamped like any other value above upper.
func positiveInt(raw string, fallback, upper int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return fallback
	}
	switch {
	case n < 1:
		return 1
	case n > upper:
		return upper
	}
	return n
}

func parseSort(raw string) *Sort {
	field, direction, _ := strings.Cut(strings.TrimSpace(raw), ":")
	field = strings.TrimSpace(field)
	if field == "" {
		return nil
	}

	dir := Asc
	if Direction(strings.ToLower(strings.TrimSpace(direction))) == Desc {
		dir = Desc
	}
	return &Sort{Field: field, Direction: dir}
}

// bracketPath splits "filter[a][b][]" into ["a", "b", ""].
func bracketPath(key string) ([]string, bool) {
	rest, ok := strings.CutPrefix(key, "filter[")
	if !ok || !strings.HasSuffix(rest, "]") {
		return nil, false
	}
	rest = strings.TrimSuffix(rest, "]")
	return strings.Split(rest, "]["), true
}

func mergeBracketFilters(values url.Values, raw map[string]any) {
	for key, vals := range values {
		path, ok := bracketPath(key)
		if !ok || len(vals) == 0 || path[0] == "" {
			continue
		}
		field := path[0]

		switch {
		case len(path) == 1 && len(vals) == 1:
			raw[field] = vals[0]
		case len(path) == 1, len(path) == 2 && path[1] == "":
			set := make([]any, 0, len(vals))
			for _, v := range vals {
				set = append(set, v)
			}
			raw[field] = set
		case len(path) == 2:
			ops, ok := raw[field].(map[string]any)
			if !ok {
				ops = map[string]any{}
				raw[field] = ops
			}
			ops[path[1]] = vals[len(vals)-1]
		}
	}
}

func normalizeFilters(raw map[string]any) ([]FieldFilter, []string) {
	fields := make([]string, 0, len(raw))
	for field := range raw {
		if strings.TrimSpace(field) != "" {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	var (
		filters []FieldFilter
		dropped []string
	)
	for _, field := range fields {
		switch value := raw[field].(type) {
		case []any:
			set := make([]any, 0, len(value))
			for _, v := range value {
				if s, ok := scalar(v); ok {
					set = append(set, s)
				}
			}
			filters = append(filters, FieldFilter{Field: field, Kind: KindSet, Values: set})

		case map[string]any:
			names := make([]string, 0, len(value))
			for name := range value {
				names = append(names, name)
			}
			sort.Strings(names)

			var ops []OperatorValue
			for _, name := range names {
				op := Operator(name)
				v, ok := scalar(value[name])
				if !op.Valid() || !ok {
					dropped = append(dropped, field+"."+name)
					continue
				}
				ops = append(ops, OperatorValue{Op: op, Value: v})
			}
			if len(ops) > 0 {
				filters = append(filters, FieldFilter{Field: field, Kind: KindOperators, Operators: ops})
			}

		default:
			if v, ok := scalar(value); ok {
				filters = append(filters, FieldFilter{Field: field, Kind: KindScalar, Value: v})
			}
		}
	}
	return filters, dropped
}

// scalar normalizes a decoded JSON value; whole floats become int64 so
// they bind to integer columns.
func scalar(v any) (any, bool) {
	switch value := v.(type) {
	case nil, string, bool, int, int64:
		return value, true
	case float64:
		if value == math.Trunc(value) && math.Abs(value) < 1<<53 {
			return int64(value), true
		}
		return value, true
	default:
		return nil, false
	}
}
