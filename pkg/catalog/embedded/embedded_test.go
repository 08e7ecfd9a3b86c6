package embedded_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/filasync/pkg/catalog/embedded"
)

func TestDatabaseSnapshot(t *testing.T) {
	db, err := embedded.New().Database()
	require.NoError(t, err)

	list := db.List()
	require.NotEmpty(t, list)
	assert.Equal(t, len(list), db.Count())
	assert.NotEmpty(t, db.Version())

	seen := make(map[string]bool)
	for _, m := range list {
		id := m.ID()
		assert.NotEmpty(t, id)
		assert.False(t, seen[id], "duplicate id %s in snapshot", id)
		seen[id] = true
	}
}

func TestOptionsSnapshot(t *testing.T) {
	opts, err := embedded.New().Options()
	require.NoError(t, err)
	assert.NotZero(t, opts.Vendors())
}
