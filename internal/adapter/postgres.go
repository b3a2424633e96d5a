package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/leapstack-labs/sqlmentor/pkg/verify"
)

func init() {
	Register("postgres", func(cfg Config) (verify.Runner, error) {
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres backend requires a DSN")
		}
		db, err := sql.Open("pgx", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres connection: %w", err)
		}
		return NewPostgresRunner(db, cfg), nil
	})
}

// PostgresRunner executes each run inside a transaction that is always
// rolled back, so the setup script's tables never outlive the run and
// concurrent runs stay isolated.
type PostgresRunner struct {
	db     *sql.DB
	config Config
}

// NewPostgresRunner creates a runner over an open connection pool. The
// caller keeps ownership of db.
func NewPostgresRunner(db *sql.DB, cfg Config) *PostgresRunner {
	return &PostgresRunner{db: db, config: cfg}
}

// Run applies the setup script and executes the query inside one
// transaction, then rolls it back. Query failures are reported inside the
// result; connection and transaction failures surface as errors.
func (r *PostgresRunner) Run(ctx context.Context, setup, query string) (*verify.ExecutionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.config.timeout())
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if strings.TrimSpace(setup) != "" {
		if _, err := tx.ExecContext(ctx, setup); err != nil {
			return nil, fmt.Errorf("failed to apply setup script: %w", err)
		}
	}

	rows, err := tx.QueryContext(ctx, query)
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

// Close releases the underlying connection pool.
func (r *PostgresRunner) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
