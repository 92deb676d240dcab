package table

import (
	"strconv"
	"time"
)

// DateLayout is the text form of time columns, used by search and filters.
const DateLayout = "2006-01-02"

// Column describes one record attribute and the ways it takes part in a table.
type Column[T any] struct {
	ID     string
	Header string

	// Value returns the attribute as rendered in projections and exports.
	Value func(T) interface{}
	// Text returns the attribute's text form for search & filters; ok is false when the attribute is absent.
	Text func(T) (string, bool)
	// Compare orders two records by this column; a nil Compare means the column is not sortable.
	Compare func(a, b T) int

	Searchable bool
	Filterable bool
	Hidden     bool // not visible by default
}

func (c Column[T]) Sortable() bool { return c.Compare != nil }

// Search marks the column as part of the free-text search.
func (c Column[T]) Search() Column[T] {
	c.Searchable = true
	return c
}

// Filter marks the column as usable in field filters.
func (c Column[T]) Filter() Column[T] {
	c.Filterable = true
	return c
}

// Hide hides the column by default.
func (c Column[T]) Hide() Column[T] {
	c.Hidden = true
	return c
}

// NoSort drops the column's comparator.
func (c Column[T]) NoSort() Column[T] {
	c.Compare = nil
	return c
}

// String builds a sortable column over a string attribute. An empty string is an absent attribute.
func String[T any](id, header string, get func(T) string) Column[T] {
	return Column[T]{
		ID:      id,
		Header:  header,
		Value:   func(r T) interface{} { return get(r) },
		Text:    func(r T) (string, bool) { s := get(r); return s, s != "" },
		Compare: ByString(get),
	}
}

// Int builds a sortable column over an int attribute.
func Int[T any](id, header string, get func(T) int) Column[T] {
	return Column[T]{
		ID:      id,
		Header:  header,
		Value:   func(r T) interface{} { return get(r) },
		Text:    func(r T) (string, bool) { return strconv.Itoa(get(r)), true },
		Compare: ByInt(get),
	}
}

// Float builds a sortable column over a float attribute.
func Float[T any](id, header string, get func(T) float64) Column[T] {
	return Column[T]{
		ID:      id,
		Header:  header,
		Value:   func(r T) interface{} { return get(r) },
		Text:    func(r T) (string, bool) { return strconv.FormatFloat(get(r), 'f', -1, 64), true },
		Compare: ByFloat(get),
	}
}

// Time builds a sortable column over a time attribute. A zero time is an absent attribute.
func Time[T any](id, header string, get func(T) time.Time) Column[T] {
	return Column[T]{
		ID:     id,
		Header: header,
		Value:  func(r T) interface{} { return get(r) },
		Text: func(r T) (string, bool) {
			t := get(r)
			if t.IsZero() {
				return "", false
			}
			return t.Format(DateLayout), true
		},
		Compare: ByTime(get),
	}
}

// Bool builds a sortable column over a bool attribute.
func Bool[T any](id, header string, get func(T) bool) Column[T] {
	return Column[T]{
		ID:      id,
		Header:  header,
		Value:   func(r T) interface{} { return get(r) },
		Text:    func(r T) (string, bool) { return strconv.FormatBool(get(r)), true },
		Compare: ByBool(get),
	}
}

// Columns is the ordered list of a resource's column descriptors.
type Columns[T any] []Column[T]

func (cols Columns[T]) Lookup(id string) (Column[T], bool) {
	for _, c := range cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}

func (cols Columns[T]) IDs() []string {
	ids := make([]string, 0, len(cols))
	for _, c := range cols {
		ids = append(ids, c.ID)
	}
	return ids
}

// DefaultVisible returns the ids of the columns not hidden by default.
func (cols Columns[T]) DefaultVisible() []string {
	ids := make([]string, 0, len(cols))
	for _, c := range cols {
		if !c.Hidden {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func (cols Columns[T]) filter(keep func(Column[T]) bool) []string {
	var ids []string
	for _, c := range cols {
		if keep(c) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func (cols Columns[T]) sortableIDs() []string {
	return cols.filter(func(c Column[T]) bool { return c.Sortable() })
}

func (cols Columns[T]) filterableIDs() []string {
	return cols.filter(func(c Column[T]) bool { return c.Filterable })
}
