package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TODOLIST_BACKEND", "TODOLIST_DATA_DIR", "TODOLIST_DATABASE_URL",
		"DATABASE_URL", "TODOLIST_MYSQL_DSN", "TODOLIST_VERBOSE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg := Load()
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Empty(t, cfg.DataDir)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.Verbose)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	t.Setenv("TODOLIST_BACKEND", " Postgres ")
	t.Setenv("DATABASE_URL", "postgres://fallback")
	t.Setenv("TODOLIST_VERBOSE", "1")
	t.Setenv("TODOLIST_DATA_DIR", "/tmp/todolist")

	cfg := Load()
	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, "postgres://fallback", cfg.DatabaseURL)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, "/tmp/todolist", cfg.DataDir)

	t.Setenv("TODOLIST_DATABASE_URL", "postgres://primary")
	t.Setenv("TODOLIST_VERBOSE", "not-a-bool")
	cfg = Load()
	assert.Equal(t, "postgres://primary", cfg.DatabaseURL)
	assert.False(t, cfg.Verbose)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("TODOLIST_BACKEND=mysql\nTODOLIST_MYSQL_DSN=user:pw@tcp(localhost:3306)/todo\n"), 0600))

	cfg := Load()
	assert.Equal(t, BackendMySQL, cfg.Backend)
	assert.Equal(t, "user:pw@tcp(localhost:3306)/todo", cfg.MySQLDSN)
}
