// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shalean/bookingimport/cmd/config"
	"github.com/shalean/bookingimport/internal/log/zerolog"
	"github.com/shalean/bookingimport/internal/profiling"
	"github.com/shalean/bookingimport/pkg/cleaners"
	loglib "github.com/shalean/bookingimport/pkg/log"
	"github.com/shalean/bookingimport/pkg/migration"
)

// Version is the bookingimport version
var (
	Version = "development"
	Env     string
)

func Prepare() *cobra.Command {
	v := viper.New()
	config.BindEnv(v)

	rootCmd := &cobra.Command{
		Use:          "bookingimport <input.sql> [output.sql]",
		Short:        "Transforms a legacy bookings SQL dump into an idempotent upsert migration",
		SilenceUsage: true,
		Version:      version(),
		Args:         cobra.RangeArgs(1, 2),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			if err := config.Load(v); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return nil
		},
		RunE: withSignalWatcher(withProfiling(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			return runImport(ctx, cmd, v, args)
		})),
		Example: `
	bookingimport legacy_bookings.sql
	bookingimport legacy_bookings.sql supabase/migrations/056_import_bookings.sql
	bookingimport legacy_bookings.sql --cleaners-url <postgres-url> --progress-bar
	bookingimport legacy_bookings.sql --config import.yaml --log-level debug`,
	}

	// Flag definition

	// root cmd
	rootCmd.PersistentFlags().StringP("config", "c", "", ".env or .yaml config file to use with bookingimport if any")
	rootCmd.PersistentFlags().String("log-level", "info", "log level for the application. One of trace, debug, info, warn, error, fatal, panic")

	// import flags
	rootCmd.Flags().String("table", migration.DefaultTable, "Target bookings table the migration inserts into")
	rootCmd.Flags().String("cleaners-table", cleaners.DefaultTable, "Table mapping legacy cleaner ids to cleaner ids")
	rootCmd.Flags().String("cleaners-url", "", "Postgres URL used to resolve every legacy cleaner before generating the migration. Cleaners are resolved when the migration is applied if not set")
	rootCmd.Flags().Int("progress-interval", migration.DefaultProgressInterval, "Number of rows between progress lines")
	rootCmd.Flags().Bool("progress-bar", false, "Whether to render a progress bar instead of progress lines")
	rootCmd.Flags().String("profile-dir", "", "Directory to write CPU and memory profile files to. Profiling is disabled if not set")

	// register subcommands
	rootCmd.AddCommand(newInspectCmd(v))
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	cmd := Prepare()
	return cmd.Execute()
}

// withSignalWatcher cancels the command context on termination signals.
func withSignalWatcher(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(),
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGQUIT)
		defer stop()
		return fn(ctx, cmd, args)
	}
}

func withProfiling(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(ctx context.Context, cmd *cobra.Command, args []string) error {
	return func(ctx context.Context, cmd *cobra.Command, args []string) (err error) {
		dir, _ := cmd.Flags().GetString("profile-dir")
		if dir == "" {
			return fn(ctx, cmd, args)
		}

		stop, err := profiling.Start(dir)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, stop())
		}()

		return fn(ctx, cmd, args)
	}
}

func newLogger(v *viper.Viper) loglib.Logger {
	logger := zerolog.NewLogger(&zerolog.Config{
		LogLevel: config.LogLevel(v),
	})
	zerolog.SetGlobalLogger(logger)
	return zerolog.NewStdLogger(logger)
}

func version() string {
	if Env != "" {
		return Env + " (" + Version + ")"
	}
	return Version
}
