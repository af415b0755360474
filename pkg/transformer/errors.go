// SPDX-License-Identifier: Apache-2.0

package transformer

import (
	"errors"
	"fmt"
)

var (
	ErrTooFewFields = errors.New("row has fewer fields than the legacy schema guarantees")

	errMissingBookingID = errors.New("missing booking id")
	errInvalidCleanerID = errors.New("invalid cleaner id")
	errDuplicateColumn  = errors.New("duplicate target column")
	errInvalidSource    = errors.New("legacy source index out of range")
	errMissingColumn    = errors.New("missing required target column")
	errNoColumnValue    = errors.New("target column has no value function")
)

// RowError is returned when a single legacy row can't be transformed. The row
// is expected to be skipped while the import carries on.
type RowError struct {
	Index     int
	BookingID string
	Column    string
	Err       error
}

func (e *RowError) Error() string {
	msg := fmt.Sprintf("row %d", e.Index)
	if e.BookingID != "" {
		msg += fmt.Sprintf(" (booking %s)", e.BookingID)
	}
	if e.Column != "" {
		msg += fmt.Sprintf(": column %s", e.Column)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
