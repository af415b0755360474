// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"
	"sync/atomic"

	"github.com/shalean/bookingimport/internal/postgres"
)

type Querier struct {
	QueryFn    func(ctx context.Context, i uint, query string, args ...any) (postgres.Rows, error)
	CloseFn    func(context.Context) error
	queryCalls uint32
}

func (m *Querier) Query(ctx context.Context, query string, args ...any) (postgres.Rows, error) {
	atomic.AddUint32(&m.queryCalls, 1)
	return m.QueryFn(ctx, uint(atomic.LoadUint32(&m.queryCalls)), query, args...)
}

func (m *Querier) Close(ctx context.Context) error {
	if m.CloseFn != nil {
		return m.CloseFn(ctx)
	}
	return nil
}

func (m *Querier) QueryCalls() uint {
	return uint(atomic.LoadUint32(&m.queryCalls))
}
