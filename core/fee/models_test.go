package fee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource(t *testing.T) {
	require.NoError(t, Resource.Check())
}

func TestSetStatus(t *testing.T) {
	f := Fee{Amount: 300, Paid: 100, Status: StatusPartial}
	assert.Equal(t, 200.0, f.Balance())

	overdue := Resource.SetStatus(f, StatusOverdue)
	assert.Equal(t, 100.0, overdue.Paid)

	paid := Resource.SetStatus(f, StatusPaid)
	assert.Equal(t, 0.0, paid.Balance())
	assert.Equal(t, 100.0, f.Paid, "the original is not mutated")
}
