package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/pmezard/go-difflib/difflib"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotSortable   = errors.New("column is not sortable")
	ErrNotFilterable = errors.New("column is not filterable")
	ErrPageSize      = errors.New("invalid page size")
	ErrEmptyColumns  = errors.New("at least one column must be visible")
	ErrLastColumn    = errors.New("cannot hide the last visible column")
)

// ColumnError reports a column id that cannot be used for the requested operation.
type ColumnError struct {
	Param      string // query parameter the id came from, eg: "ordering"
	Column     string
	Err        error
	Suggestion string
}

func (e *ColumnError) Error() string {
	msg := fmt.Sprintf("%s %q", e.Err, e.Column)
	if e.Suggestion != "" {
		msg += fmt.Sprintf("; did you mean %q?", e.Suggestion)
	}
	return msg
}

func (e *ColumnError) Cause() error { return e.Err }

func newColumnError(param, column string, err error, candidates []string) *ColumnError {
	return &ColumnError{
		Param:      param,
		Column:     column,
		Err:        err,
		Suggestion: suggest(column, candidates),
	}
}

// suggest returns the closest candidate to id, if any is close enough.
func suggest(id string, candidates []string) string {
	best, bestRatio := "", 0.6
	for _, c := range candidates {
		ratio := difflib.NewMatcher(strings.Split(id, ""), strings.Split(c, "")).Ratio()
		if ratio >= bestRatio && (best == "" || ratio > bestRatio) {
			best, bestRatio = c, ratio
		}
	}
	return best
}

// PageSizeError reports a page size outside of the allowed set.
type PageSizeError struct {
	Size    int
	Allowed []int
}

func (e *PageSizeError) Error() string {
	allowed := make([]string, len(e.Allowed))
	for i, n := range e.Allowed {
		allowed[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("%s %d; must be one of %s", ErrPageSize, e.Size, strings.Join(allowed, ", "))
}

func (e *PageSizeError) Cause() error { return ErrPageSize }
