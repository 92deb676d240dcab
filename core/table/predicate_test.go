package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatches(t *testing.T) {
	rec := record{ID: "1", Name: "Greenfield Academy", Email: "info@greenfield.edu", Status: "active", Plan: "enterprise"}
	noPlan := record{ID: "2", Name: "Hillside", Status: "active"}

	tests := []struct {
		name    string
		rec     record
		search  string
		filters Filters
		want    bool
	}{
		{name: "empty search matches", rec: rec, want: true},
		{name: "search name case-insensitive", rec: rec, search: "GREEN", want: true},
		{name: "search email", rec: rec, search: "@greenfield", want: true},
		{name: "search not searchable column", rec: rec, search: "enterprise", want: false},
		{name: "search substring only", rec: rec, search: "academy green", want: false},
		{name: "filter equal", rec: rec, filters: Filters{"status": {"active"}}, want: true},
		{name: "filter case-insensitive", rec: rec, filters: Filters{"status": {"Active"}}, want: true},
		{name: "filter mismatch", rec: rec, filters: Filters{"status": {"inactive"}}, want: false},
		{name: "filter allowed set", rec: rec, filters: Filters{"plan": {"basic", "enterprise"}}, want: true},
		{name: "filters conjunction", rec: rec, filters: Filters{"status": {"active"}, "plan": {"basic"}}, want: false},
		{name: "all sentinel", rec: rec, filters: Filters{"status": {All}}, want: true},
		{name: "empty values", rec: rec, filters: Filters{"status": nil}, want: true},
		{name: "absent field", rec: noPlan, filters: Filters{"plan": {"basic"}}, want: false},
		{name: "unknown field", rec: rec, filters: Filters{"lol": {"x"}}, want: false},
		{name: "search and filter", rec: rec, search: "field", filters: Filters{"status": {"active"}}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.rec, recordColumns, tt.search, tt.filters); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterRecords_idempotent(t *testing.T) {
	records := []record{
		{ID: "1", Name: "Alpha", Status: "active"},
		{ID: "2", Name: "Beta", Status: "inactive"},
		{ID: "3", Name: "Gamma", Status: "active"},
		{ID: "4", Name: "Delta", Status: "active"},
	}
	filters := Filters{"status": {"active"}}

	once := FilterRecords(records, recordColumns, "ta", filters)
	twice := FilterRecords(once, recordColumns, "ta", filters)

	assert.Equal(t, []string{"4"}, ids(once))
	assert.Equal(t, once, twice)
}

func TestFilters_Active(t *testing.T) {
	f := Filters{"status": {"active"}, "plan": {"basic", "ALL"}, "seats": {}}
	assert.Equal(t, Filters{"status": {"active"}}, f.Active())
}
