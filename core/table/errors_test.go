package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_suggest(t *testing.T) {
	candidates := []string{"name", "email", "status", "seats", "created_at"}

	tests := []struct {
		id   string
		want string
	}{
		{id: "nmae", want: "name"},
		{id: "stats", want: "status"},
		{id: "emial", want: "email"},
		{id: "created", want: "created_at"},
		{id: "name", want: "name"},
		{id: "xyz", want: ""},
		{id: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, suggest(tt.id, candidates))
		})
	}
	assert.Equal(t, "", suggest("nmae", nil))
}
