// SPDX-License-Identifier: Apache-2.0

package cleaners

import "github.com/shalean/bookingimport/pkg/literal"

// Resolver maps a legacy cleaner id to the value stored in the bookings
// assigned cleaner column.
type Resolver interface {
	Resolve(legacyID string) (literal.Value, error)
}

// DefaultTable is the cleaners table mapping legacy ids to cleaner ids.
const DefaultTable = "cleaners"
