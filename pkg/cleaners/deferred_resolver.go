// SPDX-License-Identifier: Apache-2.0

package cleaners

import (
	"fmt"

	"github.com/shalean/bookingimport/internal/postgres"
	"github.com/shalean/bookingimport/pkg/literal"
)

// DeferredResolver leaves the cleaner lookup to the database applying the
// migration. Legacy ids with no matching cleaner end up as NULL.
type DeferredResolver struct {
	table string
}

func NewDeferredResolver(table string) (*DeferredResolver, error) {
	qn, err := postgres.NewQualifiedName(table)
	if err != nil {
		return nil, fmt.Errorf("cleaners table: %w", err)
	}
	return &DeferredResolver{table: qn.String()}, nil
}

func (r *DeferredResolver) Resolve(legacyID string) (literal.Value, error) {
	return literal.Expr(fmt.Sprintf("(SELECT cleaner_id FROM %s WHERE id = %s LIMIT 1)",
		r.table, postgres.QuoteLiteral(legacyID))), nil
}
