package teacher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResource(t *testing.T) {
	require.NoError(t, Resource.Check())
}
