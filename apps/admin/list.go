package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/school"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
)

type listOptions struct {
	resource string
	search   string
	filters  filterFlags
	ordering string
	page     int // from 1
	size     int
	columns  string
}

type lister struct {
	name string
	list func(ctx context.Context, opts listOptions, w io.Writer, aligned bool) error
}

func listers(p *school.Pages) []lister {
	return []lister{
		listerOf(p.Institutions),
		listerOf(p.Subscriptions),
		listerOf(p.Teachers),
		listerOf(p.Students),
		listerOf(p.Classrooms),
		listerOf(p.Attendance),
		listerOf(p.Fees),
		listerOf(p.Materials),
		listerOf(p.Exams),
	}
}

func (cli *commandLine) resourceNames() []string {
	ls := listers(cli.pages)
	names := make([]string, len(ls))
	for i, l := range ls {
		names[i] = l.name
	}
	return names
}

// list prints one page of a resource: an aligned table for a terminal, tab separated values otherwise.
func (cli *commandLine) list(ctx context.Context, opts listOptions, aligned bool) error {
	for _, l := range listers(cli.pages) {
		if l.name == opts.resource {
			return l.list(ctx, opts, cli.out, aligned)
		}
	}
	return errors.Errorf("unknown resource %q; must be one of %s", opts.resource, strings.Join(cli.resourceNames(), ", "))
}

func listerOf[T any](page *listing.Page[T]) lister {
	name := page.Resource().Name
	return lister{name: name, list: func(ctx context.Context, opts listOptions, w io.Writer, aligned bool) error {
		st, err := listState(page, opts)
		if err != nil {
			return err
		}
		v, err := page.View(ctx, st)
		if err != nil {
			return errors.Wrapf(err, "loading %s", name)
		}
		return printView(w, v, aligned)
	}}
}

// listState builds the query State of opts, the way the API binds query params.
func listState[T any](page *listing.Page[T], opts listOptions) (*table.State, error) {
	st := page.NewState()
	st.SetSearchText(core.CleanString(opts.search))

	fields := make([]string, 0, len(opts.filters))
	for field := range opts.filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		st.SetFieldFilter(field, opts.filters[field]...)
	}

	if ords := core.ParseOrdering(opts.ordering); len(ords) > 0 {
		if len(ords) > 1 {
			return nil, errors.New("only one ordering field is supported")
		}
		dir := table.Ascending
		if !ords[0].Ascending {
			dir = table.Descending
		}
		st.SetSort(ords[0].Field, dir)
	}
	if opts.columns != "" {
		if err := st.SetVisibleColumns(core.SplitList(opts.columns)...); err != nil {
			return nil, err
		}
	}
	if opts.size != 0 {
		if err := st.SetPageSize(opts.size); err != nil {
			return nil, err
		}
	}
	if opts.page < 1 {
		return nil, errors.Errorf("page %d must be positive", opts.page)
	}
	st.SetPageIndex(opts.page - 1)

	if err := page.Validate(st); err != nil {
		return nil, err
	}
	return st, nil
}

func printView[T any](w io.Writer, v table.View[T], aligned bool) error {
	headers := make([]string, len(v.Columns))
	for i, c := range v.Columns {
		headers[i] = c.Header
	}

	out := w
	var tw *tabwriter.Writer
	if aligned {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		out = tw
	}

	if _, err := fmt.Fprintln(out, strings.Join(headers, "\t")); err != nil {
		return err
	}
	for _, row := range v.Project() {
		cells := make([]string, len(v.Columns))
		for i, c := range v.Columns {
			cells[i] = formatCell(row[c.ID])
		}
		if _, err := fmt.Fprintln(out, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	if tw != nil {
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\npage %d of %d, %d matched\n", v.PageIndex+1, v.PageCount, v.TotalMatched)
		return err
	}
	return nil
}

func formatCell(val interface{}) string {
	switch v := val.(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strings.ReplaceAll(v, "\t", " ")
	default:
		return fmt.Sprint(v)
	}
}
