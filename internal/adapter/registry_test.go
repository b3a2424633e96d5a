package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelfRegistration(t *testing.T) {
	// Both backends register via init()
	assert.True(t, IsRegistered("duckdb"), "duckdb backend should be auto-registered")
	assert.True(t, IsRegistered("postgres"), "postgres backend should be auto-registered")
}

func TestAvailable(t *testing.T) {
	backends := Available()
	assert.Contains(t, backends, "duckdb")
	assert.Contains(t, backends, "postgres")
	assert.IsIncreasing(t, backends)
}

func TestIsRegistered(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		expected bool
	}{
		{"duckdb registered", "duckdb", true},
		{"postgres registered", "postgres", true},
		{"unknown not registered", "unknown_db", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsRegistered(tt.backend)
			assert.Equal(t, tt.expected, got, "IsRegistered(%q)", tt.backend)
		})
	}
}

func TestGet(t *testing.T) {
	factory, ok := Get("duckdb")
	require.True(t, ok, "Get(duckdb) should return true")
	require.NotNil(t, factory, "Get(duckdb) should return non-nil factory")

	_, ok = Get("nonexistent")
	assert.False(t, ok, "Get(nonexistent) should return false")
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(Config{Type: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown execution backend")
}

func TestNew_PostgresRequiresDSN(t *testing.T) {
	_, err := New(Config{Type: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSN")
}

func TestConfigTimeout(t *testing.T) {
	assert.Equal(t, DefaultQueryTimeout, Config{}.timeout())
	assert.Equal(t, DefaultQueryTimeout, Config{QueryTimeout: -1}.timeout())
}
