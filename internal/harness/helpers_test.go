package harness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/n-tennyson/physics-simulator/internal/catalog"
	"github.com/n-tennyson/physics-simulator/internal/engine"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	table, err := catalog.Default()
	require.NoError(t, err)
	return engine.New(table)
}
