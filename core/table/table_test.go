package table

import (
	"time"
)

type record struct {
	ID      string
	Name    string
	Email   string
	Status  string
	Plan    string
	Seats   int
	Created time.Time
}

var recordColumns = Columns[record]{
	String("name", "Name", func(r record) string { return r.Name }).Search(),
	String("email", "Email", func(r record) string { return r.Email }).Search(),
	String("status", "Status", func(r record) string { return r.Status }).Filter(),
	String("plan", "Plan", func(r record) string { return r.Plan }).Filter().Hide(),
	Int("seats", "Seats", func(r record) int { return r.Seats }),
	Time("created_at", "Created", func(r record) time.Time { return r.Created }).Hide(),
	String("id", "ID", func(r record) string { return r.ID }).NoSort().Hide(),
}

func ids(records []record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func names(records []record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}
