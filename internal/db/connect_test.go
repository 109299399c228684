package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	h, err := Open(context.Background(), DriverSQLite, "file:connecttest?mode=memory&cache=shared")
	require.NoError(t, err)
	defer h.Close()
	for _, table := range []string{"users", "colleges", "cutoff_files", "document_templates", "questions", "tests", "test_questions"} {
		var name string
		err = h.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=$1`, table).Scan(&name)
		require.NoError(t, err, table)
	}
	// idempotent
	require.NoError(t, ensureSchema(context.Background(), h, DriverSQLite))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Driver("oracle"), "")
	assert.Error(t, err)
}
