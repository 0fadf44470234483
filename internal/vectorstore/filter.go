package vectorstore

import (
	"fmt"
	"sort"
	"strings"
)

// Filter is a structured predicate over chunk metadata used to narrow
// similarity search. The grammar is deliberately closed: an equality test on
// a single field, or a conjunction of filters. Every backend adapter
// translates this same grammar instead of building backend-specific syntax
// inline.
type Filter interface {
	isFilter()
	String() string
}

// Equals matches chunks whose metadata field equals the given value.
type Equals struct {
	Field string
	Value string
}

func (Equals) isFilter() {}

func (e Equals) String() string {
	return fmt.Sprintf("%s=%q", e.Field, e.Value)
}

// And matches chunks satisfying all of its sub-filters.
type And struct {
	Filters []Filter
}

func (And) isFilter() {}

func (a And) String() string {
	parts := make([]string, len(a.Filters))
	for i, f := range a.Filters {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, " AND ") + ")"
}

// Eq builds an equality filter.
func Eq(field, value string) Filter {
	return Equals{Field: field, Value: value}
}

// AllOf combines filters into a conjunction. A single filter is returned
// as-is and an empty list yields nil (no filter).
func AllOf(filters ...Filter) Filter {
	switch len(filters) {
	case 0:
		return nil
	case 1:
		return filters[0]
	default:
		return And{Filters: filters}
	}
}

// flatten collects the equality tests of a filter tree. Nested conjunctions
// are merged; later duplicates of a field win over earlier ones.
func flatten(f Filter) []Equals {
	switch v := f.(type) {
	case nil:
		return nil
	case Equals:
		return []Equals{v}
	case And:
		byField := make(map[string]string)
		var order []string
		for _, sub := range v.Filters {
			for _, eq := range flatten(sub) {
				if _, seen := byField[eq.Field]; !seen {
					order = append(order, eq.Field)
				}
				byField[eq.Field] = eq.Value
			}
		}
		sort.Strings(order)
		result := make([]Equals, 0, len(order))
		for _, field := range order {
			result = append(result, Equals{Field: field, Value: byField[field]})
		}
		return result
	default:
		return nil
	}
}
