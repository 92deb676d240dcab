package core

import "strings"

type Ordering struct {
	Field     string
	Ascending bool
}

// ParseOrdering parses a comma separated list of fields, eg: "-created_at,name".
// A leading "-" means descending.
func ParseOrdering(s string) []Ordering {
	var ords []Ordering
	for _, field := range SplitList(s) {
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		if field == "" {
			continue
		}
		ords = append(ords, Ordering{Field: field, Ascending: !descending})
	}
	return ords
}

func (ord Ordering) String() string {
	if ord.Ascending {
		return ord.Field
	}
	return "-" + ord.Field
}
