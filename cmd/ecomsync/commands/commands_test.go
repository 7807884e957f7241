package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "init-db", "populate-db", "masterkey"} {
		assert.True(t, names[want], want)
	}
}

func TestPopulateDBOnSQLiteFile(t *testing.T) {
	t.Setenv("ECOMSYNC_DATABASE_TYPE", "sqlite")
	t.Setenv("ECOMSYNC_DATABASE_DSN", "")
	t.Setenv("ECOMSYNC_LOG_LEVEL", "error")

	dsn := "file:" + filepath.Join(t.TempDir(), "catalog.db")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"populate-db", "--db", dsn})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		dbDSN = ""
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "manufacturers")
	assert.Contains(t, out.String(), "21")
	assert.NotContains(t, out.String(), "Skipped")
}
