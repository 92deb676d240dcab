package table

import (
	"sort"
	"strings"
	"time"
)

type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Sort is a single sort key; there is no secondary key.
type Sort struct {
	Key       string
	Direction Direction
}

func (s Sort) IsZero() bool { return s.Key == "" }

// String returns the ordering form of s, eg: "-name".
func (s Sort) String() string {
	if s.Direction == Descending {
		return "-" + s.Key
	}
	return s.Key
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// Compare orders a and b by col; Descending flips the sign. Returns -1, 0 or 1.
func Compare[T any](a, b T, col Column[T], dir Direction) int {
	if col.Compare == nil {
		return 0
	}
	c := sign(col.Compare(a, b))
	if dir == Descending {
		return -c
	}
	return c
}

// SortRecords returns a sorted copy of records. Records with equal keys keep their relative order.
func SortRecords[T any](records []T, col Column[T], dir Direction) []T {
	sorted := make([]T, len(records))
	copy(sorted, records)
	if col.Compare == nil {
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i], sorted[j], col, dir) < 0
	})
	return sorted
}

func ByString[T any](get func(T) string) func(a, b T) int {
	return func(a, b T) int { return strings.Compare(get(a), get(b)) }
}

func ByInt[T any](get func(T) int) func(a, b T) int {
	return func(a, b T) int {
		x, y := get(a), get(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
}

func ByFloat[T any](get func(T) float64) func(a, b T) int {
	return func(a, b T) int {
		x, y := get(a), get(b)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
}

func ByTime[T any](get func(T) time.Time) func(a, b T) int {
	return func(a, b T) int {
		x, y := get(a), get(b)
		switch {
		case x.Before(y):
			return -1
		case x.After(y):
			return 1
		}
		return 0
	}
}

// ByBool orders false before true.
func ByBool[T any](get func(T) bool) func(a, b T) int {
	return func(a, b T) int {
		x, y := get(a), get(b)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}
		return 1
	}
}
