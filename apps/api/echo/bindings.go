package echoapi

import (
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
)

const (
	searchParam    = "search"
	orderingParam  = "ordering"
	pageIndexParam = "page_index"
	pageSizeParam  = "page_size"
	columnsParam   = "columns"
	idParam        = "id"
	allParam       = "all"
)

// reserved query params; any other param is a field filter.
var reservedParams = map[string]bool{
	searchParam: true, orderingParam: true, pageIndexParam: true, pageSizeParam: true,
	columnsParam: true, idParam: true, allParam: true,
}

// bindState builds the query State of a list request:
//
//	?search=ada&status=active,on_leave&ordering=-name&page_index=1&page_size=10&columns=name,email&id=x&all=true
//
// The enforced filters replace whatever the client sent for their fields.
func bindState[T any](ctx echo.Context, page *listing.Page[T], enforced table.Filters) (*table.State, error) {
	st := page.NewState()
	params := ctx.QueryParams()

	if s := params.Get(searchParam); s != "" {
		st.SetSearchText(core.CleanString(s))
	}
	for field, values := range params {
		if reservedParams[field] {
			continue
		}
		st.SetFieldFilter(field, splitValues(values)...)
	}
	listing.Enforce(st, enforced)

	if s := params.Get(orderingParam); s != "" {
		ords := core.ParseOrdering(s)
		if len(ords) > 1 {
			return nil, core.NewValidationError(nil, core.FieldError{Field: orderingParam, Error: "only one ordering field is supported"})
		}
		if len(ords) == 1 {
			dir := table.Ascending
			if !ords[0].Ascending {
				dir = table.Descending
			}
			st.SetSort(ords[0].Field, dir)
		}
	}

	if _, ok := params[columnsParam]; ok {
		if err := st.SetVisibleColumns(splitValues(params[columnsParam])...); err != nil {
			return nil, err
		}
	}

	if s := params.Get(pageSizeParam); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, core.NewValidationError(nil, core.FieldError{Field: pageSizeParam, Error: "must be a number"})
		}
		if err = st.SetPageSize(n); err != nil {
			return nil, err
		}
	}
	if s := params.Get(pageIndexParam); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return nil, core.NewValidationError(nil, core.FieldError{Field: pageIndexParam, Error: "must be a positive number"})
		}
		st.SetPageIndex(n)
	}

	if all, _ := strconv.ParseBool(params.Get(allParam)); all {
		st.SelectAll()
	} else {
		st.SetSelection(params[idParam]...)
	}

	if err := page.Validate(st); err != nil {
		return nil, err
	}
	return st, nil
}

// splitValues accepts both repeated params and comma separated lists.
func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, core.SplitList(v)...)
	}
	return out
}

// queryString returns the query State of st as url params, the inverse of bindState.
func queryString(st *table.State) string {
	v := make(url.Values)
	if st.SearchText != "" {
		v.Set(searchParam, st.SearchText)
	}
	for field, values := range st.Filters.Active() {
		for _, val := range values {
			v.Add(field, val)
		}
	}
	if !st.Sort.IsZero() {
		v.Set(orderingParam, st.Sort.String())
	}
	v.Set(pageIndexParam, strconv.Itoa(st.PageIndex))
	v.Set(pageSizeParam, strconv.Itoa(st.PageSize))
	v[columnsParam] = st.VisibleColumns.IDs()
	if st.Selection.IsAll() {
		v.Set(allParam, "true")
	} else if ids := st.Selection.IDs(); len(ids) > 0 {
		v[idParam] = ids
	}
	return v.Encode()
}
