package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "ansi", cfg.Dialect)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "duckdb", cfg.Exec.Backend)
	assert.Equal(t, 5*time.Second, cfg.Exec.QueryTimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.False(t, cfg.LLM.Enabled)
	assert.Equal(t, "sqlmentor.db", cfg.StatePath)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlmentor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dialect: duckdb
server:
  addr: ":9000"
exec:
  backend: postgres
  dsn: postgres://localhost/mentor
llm:
  enabled: true
  model: gpt-4o
`), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", cfg.Dialect)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "postgres", cfg.Exec.Backend)
	assert.Equal(t, "postgres://localhost/mentor", cfg.Exec.DSN)
	assert.True(t, cfg.LLM.Enabled)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)

	// File settings must not disturb untouched defaults.
	assert.Equal(t, 5*time.Second, cfg.Exec.QueryTimeout)
}

func TestLoadMissingFileIsAnError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlmentor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))

	t.Setenv("SQLMENTOR_LOG_LEVEL", "debug")
	t.Setenv("SQLMENTOR_SERVER_ADDR", ":7777")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":7777", cfg.Server.Addr)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SQLMENTOR_EXEC_BACKEND", "postgres")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("backend", "duckdb", "")
	flags.String("addr", ":8080", "")
	flags.String("dialect", "ansi", "")
	require.NoError(t, flags.Parse([]string{"--backend=duckdb", "--dialect=postgres"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "duckdb", cfg.Exec.Backend, "changed flag wins over env")
	assert.Equal(t, "postgres", cfg.Dialect)
	assert.Equal(t, ":8080", cfg.Server.Addr, "unchanged flag must not override defaults")
}
