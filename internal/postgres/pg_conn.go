// SPDX-License-Identifier: Apache-2.0

package postgres

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/jackc/pgx/v5"
)

// Conn is a single read oriented postgres connection.
type Conn struct {
	conn *pgx.Conn
}

const connectTimeout = 30 * time.Second

func NewConn(ctx context.Context, url string) (*Conn, error) {
	pgCfg, err := ParseConfig(url)
	if err != nil {
		return nil, err
	}

	pgCfg.ConnectTimeout = connectTimeout
	pgCfg.DialFunc = (&net.Dialer{
		Timeout: connectTimeout,
		KeepAliveConfig: net.KeepAliveConfig{
			Enable:   true,
			Idle:     15 * time.Second,
			Interval: 15 * time.Second,
			Count:    9,
		},
	}).DialContext

	conn, err := pgx.ConnectConfig(ctx, pgCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", MapError(err))
	}

	return &Conn{conn: conn}, nil
}

func (c *Conn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := c.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	return &mappedRows{Rows: rows}, nil
}

func (c *Conn) Close(ctx context.Context) error {
	return MapError(c.conn.Close(ctx))
}

type mappedRows struct {
	pgx.Rows
}

func (r *mappedRows) Scan(dest ...any) error {
	return MapError(r.Rows.Scan(dest...))
}

func (r *mappedRows) Err() error {
	return MapError(r.Rows.Err())
}
