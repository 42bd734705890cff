package query

// Condition is a storage-agnostic predicate tree built from a Descriptor.
// Field names are API field names; rendering maps them to columns.
type Condition interface {
	condition()
}

// Eq matches rows whose field equals Value. A nil Value matches NULL.
type Eq struct {
	Field string
	Value any
}

// In matches rows whose field is one of Values. An empty set matches nothing.
type In struct {
	Field  string
	Values []any
}

// Compare applies a single vocabulary operator to a field.
type Compare struct {
	Field string
	Op    Operator
	Value any
}

// Search is a case-insensitive substring match of Term against Field.
type Search struct {
	Field string
	Term  string
}

// And matches when every child matches. An empty And matches everything.
type And []Condition

// Or matches when any child matches.
type Or []Condition

func (Eq) condition()      {}
func (In) condition()      {}
func (Compare) condition() {}
func (Search) condition()  {}
func (And) condition()     {}
func (Or) condition()      {}

// BuildFilter converts the filters and search term of d into one condition.
//
// Filters are AND-combined per field and per operator. The search term
// becomes a disjunction of case-insensitive substring matches over the
// searchable fields, and is ignored when searchable is empty.
func BuildFilter(d Descriptor, searchable []string) Condition {
	clauses := And{}

	if len(d.Filters) > 0 {
		filters := make(And, 0, len(d.Filters))
		for _, f := range d.Filters {
			switch f.Kind {
			case KindScalar:
				filters = append(filters, Eq{Field: f.Field, Value: f.Value})
			case KindSet:
				filters = append(filters, In{Field: f.Field, Values: f.Values})
			case KindOperators:
				for _, op := range f.Operators {
					filters = append(filters, Compare{Field: f.Field, Op: op.Op, Value: op.Value})
				}
			}
		}
		clauses = append(clauses, filters)
	}

	if d.Search != "" && len(searchable) > 0 {
		search := make(Or, 0, len(searchable))
		for _, field := range searchable {
			search = append(search, Search{Field: field, Term: d.Search})
		}
		clauses = append(clauses, search)
	}

	return clauses
}

// BuildSort returns the requested sort of d, or fallback when none was given.
func BuildSort(d Descriptor, fallback Sort) Sort {
	if d.Sort == nil {
		return fallback
	}
	return *d.Sort
}
