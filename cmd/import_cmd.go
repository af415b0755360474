// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shalean/bookingimport/cmd/config"
	"github.com/shalean/bookingimport/pkg/migration"
)

func runImport(ctx context.Context, cmd *cobra.Command, v *viper.Viper, args []string) error {
	logger := newLogger(v)

	inputPath, outputPath := args[0], ""
	if len(args) > 1 {
		outputPath = args[1]
	}

	cfg, err := config.ParseMigrationConfig(v, inputPath, outputPath)
	if err != nil {
		return fmt.Errorf("parsing import config: %w", err)
	}

	summary, err := migration.Run(ctx, logger, cfg, migration.WithOutput(cmd.OutOrStdout()))
	if err != nil {
		return err
	}

	if summary.Skipped > 0 {
		pterm.Warning.WithWriter(cmd.ErrOrStderr()).
			Printfln("%d of %d booking records were skipped, see the logs for details", summary.Skipped, summary.Found)
	}
	if summary.Duplicates > 0 {
		pterm.Warning.WithWriter(cmd.ErrOrStderr()).
			Printfln("%d booking records were replaced by a later record with the same id", summary.Duplicates)
	}
	return nil
}
