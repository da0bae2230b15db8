package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dealflow/internal/application"
	"dealflow/internal/config"
	"dealflow/pkg/contextx"
	"dealflow/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "dealflow",
		Short:         "Deal qualification pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCommand(),
		newSweepCommand(),
		newMigrateCommand(),
	)

	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and notification workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConfig(cmd, application.Serve)
		},
	}
}

func newSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Notify buyers of all pending matches once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withConfig(cmd, application.SweepOnce)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pg, err := config.LoadPostgres()
			if err != nil {
				return err
			}

			ctx := contextx.WithLogger(cmd.Context(), application.NewLogger(config.App{Name: "dealflow"}, os.Stdout))

			if err := application.Migrate(ctx, pg, down); err != nil {
				contextx.LoggerFromContextOrDefault(ctx).Error("migrate failed", logx.Error(err))
				return err
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "roll back the last migration")

	return cmd
}

func withConfig(cmd *cobra.Command, run func(context.Context, config.Config) error) error {
	cfg, err := config.Load()
	if err != nil {
		_, _ = cmd.ErrOrStderr().Write([]byte("config: " + err.Error() + "\n"))
		return err
	}

	log := application.NewLogger(cfg.App, os.Stdout)
	ctx := contextx.WithLogger(cmd.Context(), log)

	if err := run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		return err
	}

	return nil
}
