package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver

	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

func init() {
	Register("duckdb", func(cfg Config) (verify.Runner, error) {
		return NewDuckDBRunner(cfg), nil
	})
}

// DuckDBRunner executes each run against a fresh in-memory DuckDB
// instance. Nothing persists between runs.
type DuckDBRunner struct {
	config Config
}

// NewDuckDBRunner creates a DuckDB runner.
func NewDuckDBRunner(cfg Config) *DuckDBRunner {
	return &DuckDBRunner{config: cfg}
}

// Run applies the setup script and executes the query. Query failures are
// reported inside the result; only infrastructure failures (opening the
// database) surface as errors.
func (r *DuckDBRunner) Run(ctx context.Context, setup, query string) (*verify.ExecutionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.timeout())
	defer cancel()

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}

	if strings.TrimSpace(setup) != "" {
		if _, err := db.ExecContext(ctx, setup); err != nil {
			return nil, fmt.Errorf("failed to apply setup script: %w", err)
		}
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return &verify.ExecutionResult{Success: false, Error: err.Error()}, nil
	}
	defer func() { _ = rows.Close() }()

	cols, data, err := collectRows(rows)
	if err != nil {
		return &verify.ExecutionResult{Success: false, Error: err.Error()}, nil
	}
	return &verify.ExecutionResult{Success: true, Columns: cols, Rows: data}, nil
}
