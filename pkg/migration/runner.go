// SPDX-License-Identifier: Apache-2.0

package migration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"github.com/pterm/pterm"

	"github.com/shalean/bookingimport/internal/progress"
	"github.com/shalean/bookingimport/pkg/cleaners"
	"github.com/shalean/bookingimport/pkg/emitter"
	loglib "github.com/shalean/bookingimport/pkg/log"
	"github.com/shalean/bookingimport/pkg/sqlvalues"
	"github.com/shalean/bookingimport/pkg/transformer"
)

// Summary describes the outcome of an import run.
type Summary struct {
	OutputPath  string
	Found       int
	Transformed int
	Skipped     int
	// Duplicates is the number of rows replaced by a later row with the same
	// booking id.
	Duplicates int
}

type Option func(*runner)

// postgresResolver resolves every legacy cleaner id before the rows are
// transformed.
type postgresResolver interface {
	transformer.CleanerResolver
	Load(ctx context.Context, legacyIDs []string) error
	Close(ctx context.Context) error
}

type runner struct {
	cfg    *Config
	logger loglib.Logger
	status *pterm.BasicTextPrinter
	clock  clockwork.Clock

	newBar              func(total int) progress.Bar
	newPostgresResolver func(ctx context.Context, cfg *Config, logger loglib.Logger) (postgresResolver, error)
}

var (
	ErrInputNotFound = errors.New("input file does not exist")

	errMissingInputPath = errors.New("input path is required")
)

// WithOutput sets the writer for the status lines. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(r *runner) {
		r.status = r.status.WithWriter(w)
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(r *runner) {
		r.clock = c
	}
}

func WithProgressBar(newBar func(total int) progress.Bar) Option {
	return func(r *runner) {
		r.newBar = newBar
	}
}

func newRunner(logger loglib.Logger, cfg *Config, opts ...Option) *runner {
	r := &runner{
		cfg: cfg,
		logger: loglib.NewLogger(logger).WithFields(loglib.Fields{
			loglib.ModuleField: "booking_import",
		}),
		status: pterm.DefaultBasicText.WithWriter(os.Stdout),
		clock:  clockwork.NewRealClock(),
		newBar: func(total int) progress.Bar {
			return progress.NewRowsBar(total, "transforming bookings")
		},
		newPostgresResolver: newPostgresCleanerResolver,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run imports the legacy bookings in the configured input file and writes the
// upsert migration to the configured output path. Rows that can't be
// transformed are logged and skipped.
func Run(ctx context.Context, logger loglib.Logger, cfg *Config, opts ...Option) (*Summary, error) {
	return newRunner(logger, cfg, opts...).run(ctx)
}

func (r *runner) run(ctx context.Context) (*Summary, error) {
	r.printf("Reading %s...", r.cfg.InputPath)
	rows, err := readRows(r.cfg.InputPath)
	if err != nil {
		return nil, err
	}
	r.printf("Found %d booking records", len(rows))

	resolver, closeResolver, err := r.cleanerResolver(ctx, rows)
	if err != nil {
		return nil, err
	}
	defer closeResolver()

	t, err := transformer.New(resolver, transformer.WithLogger(r.logger))
	if err != nil {
		return nil, err
	}

	r.printf("Transforming data...")
	transformed, failed := r.transform(t, rows)
	r.printf("Transformed %d records", len(transformed))

	outputPath := r.cfg.outputPath()
	r.printf("Writing to %s...", outputPath)
	if err := r.write(outputPath, t.Schema(), transformed); err != nil {
		return nil, err
	}
	r.printf("Done! Generated %s with %d records", outputPath, len(transformed))

	return &Summary{
		OutputPath:  outputPath,
		Found:       len(rows),
		Transformed: len(transformed),
		Skipped:     failed,
		Duplicates:  len(rows) - failed - len(transformed),
	}, nil
}

// transform returns the transformed rows, one per booking id, and the number
// of rows that failed. A booking id seen again replaces the earlier row in
// place, since a single upsert statement can't affect the same row twice.
func (r *runner) transform(t *transformer.Transformer, rows []sqlvalues.RawRow) ([]transformer.Row, int) {
	var bar progress.Bar
	if r.cfg.ProgressBar {
		bar = r.newBar(len(rows))
		defer bar.Close()
	}

	interval := r.cfg.progressInterval()
	transformed := make([]transformer.Row, 0, len(rows))
	positions := make(map[string]int, len(rows))
	failed := 0
	for i, raw := range rows {
		if bar != nil {
			bar.Add(1)
		} else if i%interval == 0 {
			r.printf("Processing row %d/%d...", i, len(rows))
		}

		row, err := t.Transform(raw, i)
		if err != nil {
			failed++
			fields := loglib.Fields{loglib.RowField: i}
			var rowErr *transformer.RowError
			if errors.As(err, &rowErr) {
				fields[loglib.BookingIDField] = rowErr.BookingID
				fields[loglib.ColumnField] = rowErr.Column
			}
			r.logger.Warn(err, "skipping booking row", fields)
			continue
		}

		id := transformer.BookingID(raw)
		if pos, found := positions[id]; found {
			r.logger.Warn(nil, "duplicate booking id, keeping the last row", loglib.Fields{
				loglib.RowField:       i,
				loglib.BookingIDField: id,
			})
			transformed[pos] = row
			continue
		}
		positions[id] = len(transformed)
		transformed = append(transformed, row)
	}
	return transformed, failed
}

func (r *runner) cleanerResolver(ctx context.Context, rows []sqlvalues.RawRow) (transformer.CleanerResolver, func(), error) {
	if r.cfg.CleanersURL == "" {
		resolver, err := cleaners.NewDeferredResolver(r.cfg.cleanersTable())
		if err != nil {
			return nil, nil, err
		}
		return resolver, func() {}, nil
	}

	resolver, err := r.newPostgresResolver(ctx, r.cfg, r.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to cleaners database: %w", err)
	}
	closeFn := func() {
		if err := resolver.Close(context.Background()); err != nil {
			r.logger.Warn(err, "closing cleaners database connection")
		}
	}

	ids := transformer.CleanerIDs(rows)
	r.printf("Resolving %d cleaners...", len(ids))
	if err := resolver.Load(ctx, ids); err != nil {
		closeFn()
		return nil, nil, err
	}
	return resolver, closeFn, nil
}

func newPostgresCleanerResolver(ctx context.Context, cfg *Config, logger loglib.Logger) (postgresResolver, error) {
	return cleaners.NewPostgresResolver(ctx, cfg.CleanersURL, cfg.cleanersTable(),
		cleaners.WithLogger(logger),
		cleaners.WithBackoff(cfg.cleanersBackoff()))
}

func (r *runner) write(path string, schema *transformer.Schema, rows []transformer.Row) error {
	e, err := emitter.New(emitter.Config{
		Table:          r.cfg.table(),
		Columns:        schema.ColumnNames(),
		UpdateColumns:  schema.UpdateColumns(),
		ConflictColumn: transformer.ConflictColumn,
		Clock:          r.clock,
	})
	if err != nil {
		return fmt.Errorf("creating emitter: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := e.Write(buf, rows); err != nil {
		return fmt.Errorf("rendering migration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("writing migration: %w", err)
	}
	return nil
}

func (r *runner) printf(format string, args ...any) {
	r.status.Printfln(format, args...)
}

func readRows(path string) ([]sqlvalues.RawRow, error) {
	if path == "" {
		return nil, errMissingInputPath
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("reading input: %w", err)
	}

	rows, err := sqlvalues.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}
