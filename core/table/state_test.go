package table

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestState builds a State showing d.Columns, or "name" when d has none.
func newTestState(t *testing.T, d Defaults) *State {
	t.Helper()
	if len(d.Columns) == 0 {
		d.Columns = []string{"name"}
	}
	st, err := NewState(d)
	require.NoError(t, err)
	return st
}

func TestNewState(t *testing.T) {
	st := newTestState(t, Defaults{PageSize: 10, Sort: Sort{Key: "name"}, Columns: []string{"name"}})
	assert.Equal(t, 10, st.PageSize)
	assert.Equal(t, 0, st.PageIndex)
	assert.Equal(t, []int{5, 10, 15}, st.PageSizes())
	assert.Equal(t, []string{"name"}, st.VisibleColumns.IDs())

	st = newTestState(t, Defaults{PageSizes: []int{20, 50}, PageSize: 10})
	assert.Equal(t, 20, st.PageSize, "a disallowed default falls back to the first allowed size")

	tests := []struct {
		name    string
		columns []string
	}{
		{name: "no columns", columns: nil},
		{name: "blank columns", columns: []string{"", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewState(Defaults{Columns: tt.columns})
			assert.Equal(t, ErrEmptyColumns, err)
			assert.Nil(t, st)
		})
	}
}

func TestState_resetsPage(t *testing.T) {
	st := newTestState(t, Defaults{PageSize: 5})

	tests := []struct {
		name   string
		change func(st *State)
	}{
		{name: "search", change: func(st *State) { st.SetSearchText("a") }},
		{name: "filter", change: func(st *State) { st.SetFieldFilter("status", "active") }},
		{name: "filter all", change: func(st *State) { st.SetFieldFilter("status", All) }},
		{name: "clear filters", change: func(st *State) { st.ClearFilters() }},
		{name: "page size", change: func(st *State) { _ = st.SetPageSize(15) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st.SetPageIndex(3)
			tt.change(st)
			assert.Equal(t, 0, st.PageIndex)
		})
	}
}

func TestState_SetFieldFilter(t *testing.T) {
	st := newTestState(t, Defaults{})
	st.SetFieldFilter("status", "active", "pending")
	assert.Equal(t, Filters{"status": {"active", "pending"}}, st.Filters)

	st.SetFieldFilter("status", "all")
	assert.Empty(t, st.Filters)
}

func TestState_SetPageSize(t *testing.T) {
	st := newTestState(t, Defaults{PageSize: 10})
	st.SetPageIndex(2)

	err := st.SetPageSize(7)
	assert.Equal(t, ErrPageSize, errors.Cause(err))
	assert.EqualError(t, err, "invalid page size 7; must be one of 5, 10, 15")
	assert.Equal(t, 10, st.PageSize)
	assert.Equal(t, 2, st.PageIndex, "a rejected size keeps the page")

	st.SetPageIndex(-4)
	assert.Equal(t, 0, st.PageIndex)
}

func TestState_Selection(t *testing.T) {
	st := newTestState(t, Defaults{})
	st.SetSelection("b", "a")
	assert.Equal(t, []string{"a", "b"}, st.Selection.IDs())
	assert.True(t, st.Selection.Has("a"))
	assert.False(t, st.Selection.Has("c"))

	st.Selection.SelectAll()
	assert.True(t, st.Selection.IsAll())
	assert.True(t, st.Selection.Has("c"))
	assert.Empty(t, st.Selection.IDs())

	st.Selection.Clear()
	assert.True(t, st.Selection.IsEmpty())
}

func TestState_Clone(t *testing.T) {
	st := newTestState(t, Defaults{Columns: []string{"name", "email"}})
	st.SetFieldFilter("status", "active")
	st.SetSelection("1")

	c := st.Clone()
	c.SetFieldFilter("status", "inactive")
	_ = c.VisibleColumns.Hide("email")
	c.Selection.Select("2")

	assert.Equal(t, Filters{"status": {"active"}}, st.Filters)
	assert.Equal(t, []string{"name", "email"}, st.VisibleColumns.IDs())
	assert.Equal(t, []string{"1"}, st.Selection.IDs())
}

func TestState_HideColumn(t *testing.T) {
	st := newTestState(t, Defaults{Columns: []string{"name", "email"}})
	assert.NoError(t, st.HideColumn("email"))
	assert.Equal(t, ErrLastColumn, st.HideColumn("name"))
	st.ShowColumn("status")
	assert.Equal(t, []string{"name", "status"}, st.VisibleColumns.IDs())

	st.SelectAll()
	assert.True(t, st.Selection.IsAll())
	st.ClearSelection()
	assert.True(t, st.Selection.IsEmpty())
}
