// Package cli provides the sqlmentor command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlmentor/internal/adapter"
	"github.com/leapstack-labs/sqlmentor/internal/bank"
	"github.com/leapstack-labs/sqlmentor/internal/config"
	"github.com/leapstack-labs/sqlmentor/internal/llm"
	"github.com/leapstack-labs/sqlmentor/pkg/hint"
)

// Version information (set at build time).
var Version = "0.1.0"

var (
	cfgFile string
	cfg     *config.Config
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlmentor",
		Short: "SQL Mentor - query diagnosis and tiered hints",
		Long: `SQL Mentor compares a student's SQL query against a reference solution,
diagnoses why they differ, and produces a tiered hint that points the
student in the right direction without revealing the answer.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: none)")
	rootCmd.PersistentFlags().String("dialect", "", "SQL dialect to parse queries as (ansi, duckdb, postgres)")
	rootCmd.PersistentFlags().String("backend", "", "execution backend (duckdb, postgres)")
	rootCmd.PersistentFlags().String("dsn", "", "connection string for network backends")
	rootCmd.PersistentFlags().String("bank", "", "path to a YAML question bank (default: embedded)")
	rootCmd.PersistentFlags().String("state", "", "path to the progress/feedback database")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("addr", "", "listen address for serve (e.g. :8080)")

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newQuestionsCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newHintCommand())
	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() int {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// buildService assembles the diagnosis pipeline from the loaded config.
func buildService(logger *slog.Logger) (*hint.Service, error) {
	runner, err := adapter.New(adapter.Config{
		Type:         cfg.Exec.Backend,
		DSN:          cfg.Exec.DSN,
		QueryTimeout: cfg.Exec.QueryTimeout,
	})
	if err != nil {
		return nil, err
	}

	var completer hint.Completer
	if cfg.LLM.Enabled {
		completer = llm.New(llm.Config{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		})
	}
	return hint.NewService(runner, completer, logger), nil
}

// loadBank returns the configured question bank, or the embedded default.
func loadBank() (*bank.Bank, error) {
	if cfg.BankPath != "" {
		return bank.Load(cfg.BankPath)
	}
	return bank.Default(), nil
}

// readSQLArg interprets an argument as a file path when it names an
// existing file, and as literal SQL otherwise.
func readSQLArg(arg string) (string, error) {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", arg, err)
		}
		return string(data), nil
	}
	return arg, nil
}
