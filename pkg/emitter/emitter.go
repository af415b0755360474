// SPDX-License-Identifier: Apache-2.0

package emitter

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shalean/bookingimport/internal/postgres"
	"github.com/shalean/bookingimport/pkg/transformer"
)

// Config describes the upsert statement to generate.
type Config struct {
	Table          string
	Columns        []string
	UpdateColumns  []string
	ConflictColumn string
	// Clock used to timestamp the generated file. Defaults to the real clock.
	Clock clockwork.Clock
}

// Emitter renders transformed rows as a single idempotent upsert statement.
type Emitter struct {
	table          string
	columns        []string
	updateColumns  []string
	conflictColumn string
	clock          clockwork.Clock
}

var (
	ErrColumnCountMismatch = errors.New("row value count does not match column count")

	errNoColumns             = errors.New("no columns to insert")
	errUnknownConflictColumn = errors.New("conflict column is not an inserted column")
	errUnknownUpdateColumn   = errors.New("update column is not an inserted column")
)

const (
	headerTitle     = "-- Migration: Import Bookings Data (Transformed)"
	noRecordsFooter = "-- No records to import."
)

func New(cfg Config) (*Emitter, error) {
	table, err := postgres.NewQualifiedName(cfg.Table)
	if err != nil {
		return nil, fmt.Errorf("target table: %w", err)
	}
	if len(cfg.Columns) == 0 {
		return nil, errNoColumns
	}
	if !slices.Contains(cfg.Columns, cfg.ConflictColumn) {
		return nil, fmt.Errorf("%w: %q", errUnknownConflictColumn, cfg.ConflictColumn)
	}
	for _, col := range cfg.UpdateColumns {
		if !slices.Contains(cfg.Columns, col) {
			return nil, fmt.Errorf("%w: %q", errUnknownUpdateColumn, col)
		}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Emitter{
		table:          table.String(),
		columns:        quoteIdentifiers(cfg.Columns),
		updateColumns:  quoteIdentifiers(cfg.UpdateColumns),
		conflictColumn: postgres.QuoteIdentifierIfNeeded(cfg.ConflictColumn),
		clock:          clock,
	}, nil
}

// Write renders the migration for the rows on input. No statement is produced
// when there are no rows, since an empty VALUES list is not valid SQL.
func (e *Emitter) Write(w io.Writer, rows []transformer.Row) error {
	sb := &strings.Builder{}
	fmt.Fprintln(sb, headerTitle)
	fmt.Fprintf(sb, "-- Generated by bookingimport at %s\n", e.clock.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(sb, "-- Records: %d\n\n", len(rows))

	if len(rows) == 0 {
		fmt.Fprintln(sb, noRecordsFooter)
		_, err := io.WriteString(w, sb.String())
		return err
	}

	fmt.Fprintf(sb, "INSERT INTO %s (\n  %s\n) VALUES\n", e.table, strings.Join(e.columns, ", "))
	for i, row := range rows {
		if len(row) != len(e.columns) {
			return fmt.Errorf("%w: row %d has %d values, want %d", ErrColumnCountMismatch, i, len(row), len(e.columns))
		}
		if i > 0 {
			sb.WriteString(",\n")
		}
		sb.WriteString(e.buildTuple(row))
	}
	sb.WriteString("\n")
	sb.WriteString(e.buildOnConflictClause())
	sb.WriteString(";\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (e *Emitter) buildTuple(row transformer.Row) string {
	values := make([]string, 0, len(row))
	for _, v := range row {
		values = append(values, v.SQL())
	}
	return "(" + strings.Join(values, ", ") + ")"
}

func (e *Emitter) buildOnConflictClause() string {
	if len(e.updateColumns) == 0 {
		return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING", e.conflictColumn)
	}
	cols := make([]string, 0, len(e.updateColumns))
	for _, col := range e.updateColumns {
		cols = append(cols, fmt.Sprintf("  %[1]s = EXCLUDED.%[1]s", col))
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET\n%s", e.conflictColumn, strings.Join(cols, ",\n"))
}

func quoteIdentifiers(names []string) []string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, postgres.QuoteIdentifierIfNeeded(name))
	}
	return quoted
}
