package query

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Columns maps API field names to SQL column expressions. Fields that are
// not listed cannot be filtered, searched or sorted on.
type Columns map[string]string

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(v any) string {
	return likeEscaper.Replace(fmt.Sprint(v))
}

// Where renders cond as a squirrel predicate. Conditions on unknown fields
// are dropped. The result is nil when nothing remains to filter on.
func Where(cond Condition, columns Columns) sq.Sqlizer {
	switch c := cond.(type) {
	case nil:
		return nil

	case And:
		parts := make(sq.And, 0, len(c))
		for _, child := range c {
			if rendered := Where(child, columns); rendered != nil {
				parts = append(parts, rendered)
			}
		}
		if len(parts) == 0 {
			return nil
		}
		return parts

	case Or:
		parts := make(sq.Or, 0, len(c))
		for _, child := range c {
			if rendered := Where(child, columns); rendered != nil {
				parts = append(parts, rendered)
			}
		}
		if len(parts) == 0 {
			return nil
		}
		return parts

	case Eq:
		column, ok := columns[c.Field]
		if !ok {
			return nil
		}
		return sq.Eq{column: c.Value}

	case In:
		column, ok := columns[c.Field]
		if !ok {
			return nil
		}
		return sq.Eq{column: c.Values}

	case Search:
		column, ok := columns[c.Field]
		if !ok {
			return nil
		}
		return sq.ILike{column: "%" + escapeLike(c.Term) + "%"}

	case Compare:
		column, ok := columns[c.Field]
		if !ok {
			return nil
		}
		return compare(column, c.Op, c.Value)
	}

	return nil
}

func compare(column string, op Operator, value any) sq.Sqlizer {
	if value == nil && op != OpEquals && op != OpNot {
		return nil
	}

	switch op {
	case OpEquals:
		return sq.Eq{column: value}
	case OpNot:
		return sq.NotEq{column: value}
	case OpGt:
		return sq.Gt{column: value}
	case OpGte:
		return sq.GtOrEq{column: value}
	case OpLt:
		return sq.Lt{column: value}
	case OpLte:
		return sq.LtOrEq{column: value}
	case OpContains:
		return sq.Like{column: "%" + escapeLike(value) + "%"}
	case OpStartsWith:
		return sq.Like{column: escapeLike(value) + "%"}
	case OpEndsWith:
		return sq.Like{column: "%" + escapeLike(value)}
	}
	return nil
}

// OrderBy renders s as an ORDER BY term. Unknown fields fall back to
// fallback; "" is returned when neither field is known.
func OrderBy(s Sort, columns Columns, fallback Sort) string {
	column, ok := columns[s.Field]
	if !ok {
		s = fallback
		if column, ok = columns[s.Field]; !ok {
			return ""
		}
	}

	direction := "ASC"
	if s.Direction == Desc {
		direction = "DESC"
	}
	return column + " " + direction
}

// Apply narrows a select by cond. Paging is left to Page so the same
// builder can also feed a count.
func Apply(builder sq.SelectBuilder, cond Condition, columns Columns) sq.SelectBuilder {
	if where := Where(cond, columns); where != nil {
		builder = builder.Where(where)
	}
	return builder
}

// Page applies the LIMIT/OFFSET of d.
func Page(builder sq.SelectBuilder, d Descriptor) sq.SelectBuilder {
	return builder.Limit(uint64(d.Limit)).Offset(uint64(d.Offset()))
}
