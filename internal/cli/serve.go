package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlmentor/internal/server"
	"github.com/leapstack-labs/sqlmentor/internal/state"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			b, err := loadBank()
			if err != nil {
				return err
			}
			svc, err := buildService(logger)
			if err != nil {
				return err
			}

			store := state.NewSQLiteStore()
			if err := store.Open(cfg.StatePath); err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg.Server.Addr, svc, b, store, cfg.Dialect, logger)
			return srv.Start(ctx)
		},
	}
	return cmd
}
