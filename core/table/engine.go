package table

import (
	"strings"
	"sync"
)

// Row is a record projected on the visible columns: {column id: value}.
type Row map[string]interface{}

// View is the read-only result of running a State over a collection.
type View[T any] struct {
	Rows         []T
	TotalMatched int
	PageCount    int
	PageIndex    int
	PageSize     int
	Columns      []Column[T] // visible columns, in descriptor order
}

// Project renders v.Rows on the visible columns.
func (v View[T]) Project() []Row {
	return ProjectRecords(v.Rows, v.Columns)
}

func (v View[T]) ColumnIDs() []string {
	ids := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		ids[i] = c.ID
	}
	return ids
}

func ProjectRecords[T any](records []T, cols []Column[T]) []Row {
	rows := make([]Row, len(records))
	for i, rec := range records {
		row := make(Row, len(cols))
		for _, c := range cols {
			row[c.ID] = c.Value(rec)
		}
		rows[i] = row
	}
	return rows
}

// visibleColumns returns the descriptors in vis, in descriptor order.
func visibleColumns[T any](cols Columns[T], vis ColumnSet) []Column[T] {
	visible := make([]Column[T], 0, vis.Len())
	for _, c := range cols {
		if vis.Has(c.ID) {
			visible = append(visible, c)
		}
	}
	return visible
}

func sortMatched[T any](matched []T, cols Columns[T], s Sort) []T {
	col, ok := cols.Lookup(s.Key)
	if s.IsZero() || !ok || !col.Sortable() {
		return matched
	}
	return SortRecords(matched, col, s.Direction)
}

// paginateClamped paginates sorted and resets st.PageIndex to 0 when it points past the last page.
func paginateClamped[T any](sorted []T, cols Columns[T], st *State) View[T] {
	if st.PageIndex < 0 || st.PageIndex >= PageCount(len(sorted), st.PageSize) {
		st.PageIndex = 0
	}
	rows, pageCount := Paginate(sorted, st.PageIndex, st.PageSize)
	return View[T]{
		Rows:         rows,
		TotalMatched: len(sorted),
		PageCount:    pageCount,
		PageIndex:    st.PageIndex,
		PageSize:     st.PageSize,
		Columns:      visibleColumns(cols, st.VisibleColumns),
	}
}

// Derive runs the whole pipeline without memoization: filter -> sort -> paginate.
// st.PageIndex is reset to 0 when the matched set no longer reaches it.
func Derive[T any](records []T, cols Columns[T], st *State) View[T] {
	matched := FilterRecords(records, cols, st.SearchText, st.Filters)
	return paginateClamped(sortMatched(matched, cols, st.Sort), cols, st)
}

type memo[T any] struct {
	valid     bool
	gen       uint64
	filterKey string
	filtered  []T

	sortValid bool
	sort      Sort
	sorted    []T
}

// Engine derives views of a collection and memoizes the filter and sort stages:
// they are recomputed only when the records or the relevant part of the state change.
// It is safe for concurrent use.
type Engine[T any] struct {
	columns  Columns[T]
	defaults Defaults
	visible  ColumnSet

	mu      sync.Mutex
	records []T
	gen     uint64
	memo    memo[T]
}

// NewEngine returns an engine over cols. The visible columns default to the columns not hidden,
// or to every column when all of them are hidden.
func NewEngine[T any](cols Columns[T], d Defaults) (*Engine[T], error) {
	if len(d.Columns) == 0 {
		d.Columns = cols.DefaultVisible()
	}
	if len(d.Columns) == 0 {
		d.Columns = cols.IDs()
	}
	for _, id := range d.Columns {
		if _, ok := cols.Lookup(id); !ok {
			return nil, newColumnError("columns", id, ErrUnknownColumn, cols.IDs())
		}
	}
	visible, err := NewColumnSet(d.Columns...)
	if err != nil {
		return nil, err
	}
	return &Engine[T]{columns: cols, defaults: d, visible: visible}, nil
}

func (e *Engine[T]) Columns() Columns[T] { return e.columns }

func (e *Engine[T]) Defaults() Defaults { return e.defaults }

// NewState returns a State with the engine defaults.
func (e *Engine[T]) NewState() *State {
	st := newState(e.defaults)
	st.VisibleColumns = ColumnSet{ids: e.visible.IDs()}
	return st
}

// SetRecords replaces the whole collection. records must not be mutated afterwards.
func (e *Engine[T]) SetRecords(records []T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.records = records
	e.gen++
	e.memo = memo[T]{}
}

// Records returns the current collection.
func (e *Engine[T]) Records() []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.records
}

// Validate checks that every column referenced by st exists and supports its use.
func (e *Engine[T]) Validate(st *State) error {
	if !st.Sort.IsZero() {
		col, ok := e.columns.Lookup(st.Sort.Key)
		if !ok {
			return newColumnError("ordering", st.Sort.Key, ErrUnknownColumn, e.columns.sortableIDs())
		}
		if !col.Sortable() {
			return newColumnError("ordering", st.Sort.Key, ErrNotSortable, e.columns.sortableIDs())
		}
	}
	for field := range st.Filters {
		col, ok := e.columns.Lookup(field)
		if !ok || !col.Filterable {
			err := ErrNotFilterable
			if !ok {
				err = ErrUnknownColumn
			}
			return newColumnError(field, field, err, e.columns.filterableIDs())
		}
	}
	for _, id := range st.VisibleColumns.IDs() {
		if _, ok := e.columns.Lookup(id); !ok {
			return newColumnError("columns", id, ErrUnknownColumn, e.columns.IDs())
		}
	}
	if st.VisibleColumns.Len() == 0 {
		return ErrEmptyColumns
	}
	return nil
}

// matched returns the filtered and sorted records, reusing memoized stages. e.mu must be held.
func (e *Engine[T]) matched(st *State) []T {
	filterKey := strings.ToLower(st.SearchText) + "\x00" + st.Filters.key()
	if !e.memo.valid || e.memo.gen != e.gen || e.memo.filterKey != filterKey {
		e.memo = memo[T]{
			valid:     true,
			gen:       e.gen,
			filterKey: filterKey,
			filtered:  FilterRecords(e.records, e.columns, st.SearchText, st.Filters),
		}
	}
	if !e.memo.sortValid || e.memo.sort != st.Sort {
		e.memo.sort = st.Sort
		e.memo.sorted = sortMatched(e.memo.filtered, e.columns, st.Sort)
		e.memo.sortValid = true
	}
	return e.memo.sorted
}

// Matched returns every record matching st, sorted; pagination is not applied.
func (e *Engine[T]) Matched(st *State) []T {
	e.mu.Lock()
	defer e.mu.Unlock()
	m := e.matched(st)
	return append(make([]T, 0, len(m)), m...)
}

// View derives the current page of st. st.PageIndex is reset to 0 when it is out of range.
func (e *Engine[T]) View(st *State) View[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return paginateClamped(e.matched(st), e.columns, st)
}
