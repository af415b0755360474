// SPDX-License-Identifier: Apache-2.0

package postgres

import "context"

type Querier interface {
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	Close(ctx context.Context) error
}

type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}
