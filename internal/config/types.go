// Package config provides layered configuration for the service and CLI:
// built-in defaults, an optional YAML file, SQLMENTOR_* environment
// variables, and command-line flags, in ascending precedence.
package config

import "time"

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// ExecConfig holds the query execution backend settings.
type ExecConfig struct {
	// Backend selects the execution backend (duckdb, postgres)
	Backend string `koanf:"backend"`

	// DSN is the connection string for network backends
	DSN string `koanf:"dsn"`

	// QueryTimeout bounds one setup-plus-query run
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// LLMConfig holds the tier-4 model settings.
type LLMConfig struct {
	// Enabled turns the model-phrased tier on; without it tier 4 renders
	// the fixed fallback text
	Enabled bool   `koanf:"enabled"`
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	Model   string `koanf:"model"`

	// Timeout bounds one completion call
	Timeout time.Duration `koanf:"timeout"`
}

// Config is the full application configuration.
type Config struct {
	// Dialect is the SQL dialect queries are parsed as
	Dialect string `koanf:"dialect"`

	// BankPath points at a YAML question bank; empty uses the embedded one
	BankPath string `koanf:"bank_path"`

	// StatePath is the SQLite file for progress and feedback
	StatePath string `koanf:"state_path"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `koanf:"log_level"`

	Server ServerConfig `koanf:"server"`
	Exec   ExecConfig   `koanf:"exec"`
	LLM    LLMConfig    `koanf:"llm"`
}
