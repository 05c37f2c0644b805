package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoMigrationsDir(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok, "runtime.Caller failed")
	// cmd/migrate -> repo root
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "db", "migrations")
}

func TestCollectMigrations_ParsesMigrationsDir(t *testing.T) {
	migrations, err := goose.CollectMigrations(repoMigrationsDir(t), 0, goose.MaxVersion)

	require.NoError(t, err)
	assert.Len(t, migrations, 3)
}

func TestSQLMigrations_HaveGooseDirectives(t *testing.T) {
	dir := repoMigrationsDir(t)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		assert.Contains(t, string(b), "-- +goose Up", e.Name())
		assert.Contains(t, string(b), "-- +goose Down", e.Name())
	}
}

func TestSQLMigrations_DeclareStorageConstraints(t *testing.T) {
	dir := repoMigrationsDir(t)
	var all strings.Builder
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	require.NoError(t, err)
	for _, f := range files {
		b, err := os.ReadFile(f)
		require.NoError(t, err)
		all.Write(b)
	}
	sql := all.String()

	assert.Contains(t, sql, "UNIQUE (isbn)")
	assert.Contains(t, sql, "REFERENCES books (id)")
	assert.Contains(t, sql, "CREATE UNIQUE INDEX loans_one_outstanding_per_book_idx")
	assert.Contains(t, sql, "WHERE returned IS NOT TRUE")
}
