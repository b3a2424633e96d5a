package config

// Default configuration values, layered below every other source.
func defaults() map[string]any {
	return map[string]any{
		"dialect":            "ansi",
		"bank_path":          "",
		"state_path":         "sqlmentor.db",
		"log_level":          "info",
		"server.addr":        ":8080",
		"exec.backend":       "duckdb",
		"exec.dsn":           "",
		"exec.query_timeout": "5s",
		"llm.enabled":        false,
		"llm.api_key":        "",
		"llm.base_url":       "",
		"llm.model":          "gpt-4o-mini",
		"llm.timeout":        "10s",
	}
}
