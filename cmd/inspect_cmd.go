// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shalean/bookingimport/internal/json"
	"github.com/shalean/bookingimport/pkg/migration"
)

func newInspectCmd(v *viper.Viper) *cobra.Command {
	inspectCmd := &cobra.Command{
		Use:   "inspect <input.sql>",
		Short: "Reports the shape of the legacy booking rows without generating a migration",
		Args:  cobra.ExactArgs(1),
		RunE: withSignalWatcher(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			sp, _ := pterm.DefaultSpinner.WithWriter(cmd.ErrOrStderr()).WithText("inspecting " + args[0] + "...").Start()

			report, err := migration.Inspect(ctx, newLogger(v), args[0])
			if err != nil {
				sp.Fail(err.Error())
				return err
			}

			if len(report.ShortRows) == 0 {
				sp.Success("every row has the legacy column count")
			} else {
				sp.Warning(fmt.Sprintf("%d of %d rows would be skipped", len(report.ShortRows), report.Rows))
			}

			if err := printReport(cmd, report); err != nil {
				return fmt.Errorf("failed to format inspection report: %w", err)
			}
			return nil
		}),
		Example: `
	bookingimport inspect legacy_bookings.sql
	bookingimport inspect legacy_bookings.sql --json`,
	}

	inspectCmd.Flags().Bool("json", false, "Output the report in JSON format")
	return inspectCmd
}

type printer interface {
	PrettyPrint() string
}

func printReport(cmd *cobra.Command, p printer) error {
	str := p.PrettyPrint()
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	if asJSON {
		jsonData, err := json.MarshalIndent(p, "", "\t")
		if err != nil {
			return err
		}
		str = string(jsonData)
	}

	fmt.Fprintln(cmd.OutOrStdout(), str)
	return nil
}
