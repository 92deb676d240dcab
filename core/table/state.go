package table

// DefaultPageSizes are the page sizes a user may pick from.
var DefaultPageSizes = []int{5, 10, 15}

// Defaults configure a freshly created State.
type Defaults struct {
	PageSizes []int // allowed page sizes; DefaultPageSizes when empty
	PageSize  int   // first allowed size when not allowed
	Sort      Sort
	Columns   []string // initially visible columns
}

func (d Defaults) pageSizes() []int {
	if len(d.PageSizes) == 0 {
		return DefaultPageSizes
	}
	return d.PageSizes
}

// State is the mutable view-state of one table: search, filters, sort, page,
// visible columns and selection. Any change to search or filters goes back to the first page.
type State struct {
	SearchText     string
	Filters        Filters
	Sort           Sort
	PageIndex      int
	PageSize       int
	VisibleColumns ColumnSet
	Selection      Selection

	pageSizes []int
}

// NewState returns a State with the given defaults. d.Columns must name at least one column.
func NewState(d Defaults) (*State, error) {
	st := newState(d)
	if err := st.VisibleColumns.Set(d.Columns...); err != nil {
		return nil, err
	}
	return st, nil
}

// newState leaves the visible columns to the caller.
func newState(d Defaults) *State {
	st := &State{
		Filters:   make(Filters),
		Sort:      d.Sort,
		pageSizes: d.pageSizes(),
	}
	st.PageSize = st.pageSizes[0]
	if st.allowedSize(d.PageSize) {
		st.PageSize = d.PageSize
	}
	return st
}

func (st *State) allowedSize(n int) bool {
	for _, size := range st.pageSizes {
		if size == n {
			return true
		}
	}
	return false
}

// PageSizes returns the allowed page sizes.
func (st *State) PageSizes() []int { return append([]int(nil), st.pageSizes...) }

func (st *State) SetSearchText(s string) {
	st.SearchText = s
	st.PageIndex = 0
}

// SetFieldFilter constrains field to values. No values or the All sentinel lift the constraint.
func (st *State) SetFieldFilter(field string, values ...string) {
	if st.Filters == nil {
		st.Filters = make(Filters)
	}
	if len(values) == 0 || containsFold(values, All) {
		delete(st.Filters, field)
	} else {
		st.Filters[field] = append([]string(nil), values...)
	}
	st.PageIndex = 0
}

func (st *State) ClearFilters() {
	st.Filters = make(Filters)
	st.PageIndex = 0
}

func (st *State) SetSort(key string, dir Direction) {
	st.Sort = Sort{Key: key, Direction: dir}
}

func (st *State) SetPageIndex(i int) {
	if i < 0 {
		i = 0
	}
	st.PageIndex = i
}

func (st *State) SetPageSize(n int) error {
	if !st.allowedSize(n) {
		return &PageSizeError{Size: n, Allowed: st.PageSizes()}
	}
	st.PageSize = n
	st.PageIndex = 0
	return nil
}

func (st *State) SetVisibleColumns(ids ...string) error {
	return st.VisibleColumns.Set(ids...)
}

// HideColumn hides a visible column; the last visible column cannot be hidden.
func (st *State) HideColumn(id string) error { return st.VisibleColumns.Hide(id) }

func (st *State) ShowColumn(id string) { st.VisibleColumns.Show(id) }

func (st *State) SetSelection(ids ...string) {
	st.Selection.Clear()
	st.Selection.Select(ids...)
}

func (st *State) SelectAll() { st.Selection.SelectAll() }

func (st *State) ClearSelection() { st.Selection.Clear() }

// Clone returns a deep copy of st.
func (st *State) Clone() *State {
	c := *st
	c.Filters = st.Filters.clone()
	c.VisibleColumns = ColumnSet{ids: st.VisibleColumns.IDs()}
	c.Selection = Selection{all: st.Selection.all}
	c.Selection.Select(st.Selection.IDs()...)
	c.pageSizes = append([]int(nil), st.pageSizes...)
	return &c
}
