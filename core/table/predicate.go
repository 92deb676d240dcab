package table

import (
	"sort"
	"strings"
)

// All is the filter value meaning "no constraint" for a field.
const All = "all"

// Filters maps a filterable column id to its allowed values.
// A record must satisfy every field (AND); within a field any allowed value matches (OR).
type Filters map[string][]string

// Active returns the filters that actually constrain records: fields with
// no values or holding the All sentinel are dropped.
func (f Filters) Active() Filters {
	active := make(Filters, len(f))
	for field, values := range f {
		if len(values) == 0 || containsFold(values, All) {
			continue
		}
		active[field] = values
	}
	return active
}

// key is a canonical form of the active filters.
func (f Filters) key() string {
	active := f.Active()
	fields := make([]string, 0, len(active))
	for field := range active {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for _, field := range fields {
		values := make([]string, len(active[field]))
		for i, v := range active[field] {
			values[i] = strings.ToLower(v)
		}
		sort.Strings(values)
		b.WriteString(field)
		b.WriteByte('=')
		b.WriteString(strings.Join(values, "\x1f"))
		b.WriteByte('\x1e')
	}
	return b.String()
}

func (f Filters) clone() Filters {
	c := make(Filters, len(f))
	for field, values := range f {
		c[field] = append([]string(nil), values...)
	}
	return c
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

type fieldFilter[T any] struct {
	col     Column[T]
	allowed []string
	known   bool
}

type predicate[T any] struct {
	search     string // lower-cased
	searchCols []Column[T]
	filters    []fieldFilter[T]
}

func newPredicate[T any](cols Columns[T], searchText string, filters Filters) predicate[T] {
	p := predicate[T]{search: strings.ToLower(searchText)}
	if p.search != "" {
		for _, c := range cols {
			if c.Searchable && c.Text != nil {
				p.searchCols = append(p.searchCols, c)
			}
		}
	}
	for field, allowed := range filters.Active() {
		col, ok := cols.Lookup(field)
		p.filters = append(p.filters, fieldFilter[T]{
			col:     col,
			allowed: allowed,
			known:   ok && col.Text != nil,
		})
	}
	return p
}

func (p predicate[T]) matches(rec T) bool {
	if p.search != "" {
		found := false
		for _, c := range p.searchCols {
			if s, ok := c.Text(rec); ok && strings.Contains(strings.ToLower(s), p.search) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, f := range p.filters {
		if !f.known {
			return false
		}
		s, ok := f.col.Text(rec)
		if !ok || !containsFold(f.allowed, s) {
			return false
		}
	}
	return true
}

// Matches reports whether rec passes the search and every field filter.
//
// An empty searchText matches all records; otherwise any searchable column must
// contain it, case-insensitively. Absent or unknown fields never satisfy a filter.
func Matches[T any](rec T, cols Columns[T], searchText string, filters Filters) bool {
	return newPredicate(cols, searchText, filters).matches(rec)
}

// FilterRecords returns the records matching searchText and filters, in their original order.
func FilterRecords[T any](records []T, cols Columns[T], searchText string, filters Filters) []T {
	p := newPredicate(cols, searchText, filters)
	matched := make([]T, 0, len(records))
	for _, rec := range records {
		if p.matches(rec) {
			matched = append(matched, rec)
		}
	}
	return matched
}
