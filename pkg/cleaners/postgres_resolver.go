// SPDX-License-Identifier: Apache-2.0

package cleaners

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shalean/bookingimport/internal/backoff"
	"github.com/shalean/bookingimport/internal/postgres"
	"github.com/shalean/bookingimport/pkg/literal"
	loglib "github.com/shalean/bookingimport/pkg/log"
)

// PostgresResolver resolves every legacy cleaner id upfront against the
// target database, so unknown cleaners fail the import instead of silently
// being imported as NULL. The database is only read.
type PostgresResolver struct {
	querier         postgres.Querier
	table           string
	backoffProvider backoff.Provider
	logger          loglib.Logger

	cleaners map[string]string
}

type Option func(*PostgresResolver)

var (
	ErrUnresolvedCleaners = errors.New("legacy cleaner ids not found")
	errCleanerNotLoaded   = errors.New("cleaner id was not loaded")
)

const lookupQuery = "SELECT id::text, cleaner_id::text FROM %s WHERE id = ANY($1::uuid[])"

func NewPostgresResolver(ctx context.Context, url, table string, opts ...Option) (*PostgresResolver, error) {
	qn, err := postgres.NewQualifiedName(table)
	if err != nil {
		return nil, fmt.Errorf("cleaners table: %w", err)
	}

	conn, err := postgres.NewConn(ctx, url)
	if err != nil {
		return nil, err
	}

	return newPostgresResolver(conn, qn, opts...), nil
}

func newPostgresResolver(querier postgres.Querier, table *postgres.QualifiedName, opts ...Option) *PostgresResolver {
	r := &PostgresResolver{
		querier:         querier,
		table:           table.String(),
		backoffProvider: backoff.NewProvider(backoff.DefaultConfig()),
		logger:          loglib.NewNoopLogger(),
		cleaners:        map[string]string{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func WithLogger(l loglib.Logger) Option {
	return func(r *PostgresResolver) {
		r.logger = loglib.NewLogger(l).WithFields(loglib.Fields{
			loglib.ModuleField: "postgres_cleaner_resolver",
		})
	}
}

func WithBackoff(cfg *backoff.Config) Option {
	return func(r *PostgresResolver) {
		r.backoffProvider = backoff.NewProvider(cfg)
	}
}

// Load looks up the legacy ids on input in a single query. Connection
// timeouts are retried. It returns ErrUnresolvedCleaners if any of the ids
// has no cleaner.
func (r *PostgresResolver) Load(ctx context.Context, legacyIDs []string) error {
	if len(legacyIDs) == 0 {
		return nil
	}

	var found map[string]string
	err := r.backoffProvider(ctx).RetryNotify(
		func() error {
			var err error
			found, err = r.lookup(ctx, legacyIDs)
			if err != nil && !errors.Is(err, postgres.ErrConnTimeout) {
				return fmt.Errorf("%w: %w", err, backoff.ErrPermanent)
			}
			return err
		},
		func(err error, d time.Duration) {
			r.logger.Warn(err, "cleaner lookup failed, retrying", loglib.Fields{"backoff": d.String()})
		})
	if err != nil {
		return fmt.Errorf("looking up cleaners in %s: %w", r.table, err)
	}

	missing := []string{}
	for _, id := range legacyIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w in %s: %s", ErrUnresolvedCleaners, r.table, strings.Join(missing, ", "))
	}

	r.cleaners = found
	r.logger.Info("cleaners resolved", loglib.Fields{"count": len(found)})
	return nil
}

func (r *PostgresResolver) lookup(ctx context.Context, legacyIDs []string) (map[string]string, error) {
	rows, err := r.querier.Query(ctx, fmt.Sprintf(lookupQuery, r.table), legacyIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := make(map[string]string, len(legacyIDs))
	for rows.Next() {
		var legacyID string
		var cleanerID *string
		if err := rows.Scan(&legacyID, &cleanerID); err != nil {
			return nil, fmt.Errorf("scanning cleaner row: %w", err)
		}
		// a legacy id mapped to no cleaner is as good as missing
		if cleanerID == nil {
			continue
		}
		found[legacyID] = *cleanerID
	}
	return found, rows.Err()
}

func (r *PostgresResolver) Resolve(legacyID string) (literal.Value, error) {
	cleanerID, found := r.cleaners[legacyID]
	if !found {
		return nil, fmt.Errorf("%w: %s", errCleanerNotLoaded, legacyID)
	}
	return literal.Text(cleanerID), nil
}

func (r *PostgresResolver) Close(ctx context.Context) error {
	return r.querier.Close(ctx)
}
