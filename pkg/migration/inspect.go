// SPDX-License-Identifier: Apache-2.0

package migration

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	loglib "github.com/shalean/bookingimport/pkg/log"
	"github.com/shalean/bookingimport/pkg/transformer"
)

// Report describes the shape of the legacy rows in an input file.
type Report struct {
	InputPath string `json:"input_path"`
	Rows      int    `json:"rows"`
	// FieldCounts maps a row width to the number of rows with that width.
	FieldCounts map[int]int `json:"field_counts"`
	// ShortRows are the indexes of the rows that would be skipped for having
	// fewer fields than the legacy schema guarantees.
	ShortRows []int `json:"short_rows"`
}

// Inspect parses the input file without transforming or writing anything.
func Inspect(ctx context.Context, logger loglib.Logger, inputPath string) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := readRows(inputPath)
	if err != nil {
		return nil, err
	}

	report := &Report{
		InputPath:   inputPath,
		Rows:        len(rows),
		FieldCounts: map[int]int{},
		ShortRows:   []int{},
	}
	for i, row := range rows {
		report.FieldCounts[len(row)]++
		if len(row) < transformer.MinLegacyColumns {
			report.ShortRows = append(report.ShortRows, i)
		}
	}

	loglib.NewLogger(logger).Debug("input inspected", loglib.Fields{
		"input":      inputPath,
		"rows":       report.Rows,
		"short_rows": len(report.ShortRows),
	})

	return report, nil
}

func (r *Report) PrettyPrint() string {
	sb := &strings.Builder{}
	fmt.Fprintf(sb, "input: %s\n", r.InputPath)
	fmt.Fprintf(sb, "rows: %d\n", r.Rows)
	fmt.Fprintln(sb, "fields per row:")
	for _, width := range slices.Sorted(maps.Keys(r.FieldCounts)) {
		fmt.Fprintf(sb, " - %d fields: %d rows\n", width, r.FieldCounts[width])
	}
	if len(r.ShortRows) == 0 {
		fmt.Fprintf(sb, "rows below %d fields: none", transformer.MinLegacyColumns)
		return sb.String()
	}

	idx := make([]string, 0, len(r.ShortRows))
	for _, i := range r.ShortRows {
		idx = append(idx, fmt.Sprint(i))
	}
	fmt.Fprintf(sb, "rows below %d fields: %s", transformer.MinLegacyColumns, strings.Join(idx, ", "))
	return sb.String()
}
