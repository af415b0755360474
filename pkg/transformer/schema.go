// SPDX-License-Identifier: Apache-2.0

package transformer

import (
	"fmt"

	"github.com/shalean/bookingimport/pkg/literal"
)

// MinLegacyColumns is the minimum number of fields every legacy booking row
// is guaranteed to have.
const MinLegacyColumns = 35

// Legacy booking column positions. Positions 14, 18, 20-23, 25-30, 33 and 34
// are not carried over.
const (
	legacyBookingID        = 0
	legacyCleanerID        = 1
	legacyDate             = 2
	legacyTime             = 3
	legacyServiceType      = 4
	legacyCustomerName     = 5
	legacyEmail            = 6
	legacyPhone            = 7
	legacyStreetAddress    = 8
	legacySuburb           = 9
	legacyCity             = 10
	legacyPaymentReference = 11
	legacyStatus           = 12
	legacyCreatedAt        = 13
	legacyTotalAmount      = 15
	legacyServiceFee       = 16
	legacyFrequency        = 17
	legacyPriceSnapshot    = 19
	legacyCleanerEarnings  = 24
	legacyUpdatedAt        = 31
	legacyTipAmount        = 32
)

const (
	// ConflictColumn is the target primary key used as conflict target.
	ConflictColumn = "id"
)

// immutable columns keep the value of the first import when a booking is
// imported again
var immutableColumns = map[string]struct{}{
	"id":                {},
	"booking_reference": {},
	"created_at":        {},
}

// Column describes how one target column is computed from a legacy row.
type Column struct {
	Name string
	// Sources are the legacy positions the value is read from.
	Sources []int
	Value   func(r *record) (literal.Value, error)
}

// Schema is the validated, ordered list of target columns.
type Schema struct {
	columns []Column
}

// NewSchema validates the column definitions on input. Every column must have
// a unique name and a value function, every legacy source must be within the
// guaranteed legacy row width, and the conflict column must be present.
func NewSchema(columns []Column) (*Schema, error) {
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, found := seen[col.Name]; found {
			return nil, fmt.Errorf("%w: %s", errDuplicateColumn, col.Name)
		}
		seen[col.Name] = struct{}{}

		if col.Value == nil {
			return nil, fmt.Errorf("%w: %s", errNoColumnValue, col.Name)
		}
		for _, src := range col.Sources {
			if src < 0 || src >= MinLegacyColumns {
				return nil, fmt.Errorf("%w: column %s reads position %d", errInvalidSource, col.Name, src)
			}
		}
	}

	if _, found := seen[ConflictColumn]; !found {
		return nil, fmt.Errorf("%w: %s", errMissingColumn, ConflictColumn)
	}

	return &Schema{columns: columns}, nil
}

// ColumnNames returns the target column names in emission order.
func (s *Schema) ColumnNames() []string {
	names := make([]string, 0, len(s.columns))
	for _, col := range s.columns {
		names = append(names, col.Name)
	}
	return names
}

// UpdateColumns returns the columns refreshed when a booking already exists in
// the target.
func (s *Schema) UpdateColumns() []string {
	names := make([]string, 0, len(s.columns))
	for _, col := range s.columns {
		if _, immutable := immutableColumns[col.Name]; immutable {
			continue
		}
		names = append(names, col.Name)
	}
	return names
}

// BookingColumns is the bookings target table layout.
func BookingColumns() []Column {
	return []Column{
		{Name: "id", Sources: []int{legacyBookingID}, Value: bookingID},
		{Name: "booking_reference", Sources: []int{legacyBookingID}, Value: bookingID},
		{Name: "scheduled_date", Sources: []int{legacyDate}, Value: nullableText(legacyDate)},
		{Name: "scheduled_time", Sources: []int{legacyTime}, Value: nullableText(legacyTime)},
		{Name: "service_type", Sources: []int{legacyServiceType}, Value: serviceType},
		{Name: "frequency", Sources: []int{legacyFrequency}, Value: frequency},
		{Name: "bedrooms", Sources: []int{legacyPriceSnapshot}, Value: bedrooms},
		{Name: "bathrooms", Sources: []int{legacyPriceSnapshot}, Value: bathrooms},
		{Name: "extras", Sources: []int{legacyPriceSnapshot}, Value: extras},
		{Name: "street_address", Sources: []int{legacyStreetAddress}, Value: nullableText(legacyStreetAddress)},
		{Name: "suburb", Sources: []int{legacySuburb}, Value: nullableText(legacySuburb)},
		{Name: "city", Sources: []int{legacyCity}, Value: nullableText(legacyCity)},
		{Name: "assigned_cleaner_id", Sources: []int{legacyCleanerID}, Value: assignedCleaner},
		{Name: "contact_first_name", Sources: []int{legacyCustomerName}, Value: firstName},
		{Name: "contact_last_name", Sources: []int{legacyCustomerName}, Value: lastName},
		{Name: "contact_email", Sources: []int{legacyEmail}, Value: nullableText(legacyEmail)},
		{Name: "contact_phone", Sources: []int{legacyPhone}, Value: nullableText(legacyPhone)},
		{Name: "payment_reference", Sources: []int{legacyPaymentReference}, Value: nullableText(legacyPaymentReference)},
		{Name: "status", Sources: []int{legacyStatus}, Value: status},
		{Name: "payment_status", Sources: []int{legacyStatus}, Value: paymentStatus},
		{Name: "total_amount", Sources: []int{legacyTotalAmount}, Value: amountOrZero(legacyTotalAmount)},
		{Name: "tip_amount", Sources: []int{legacyTipAmount}, Value: amountOrZero(legacyTipAmount)},
		{Name: "created_at", Sources: []int{legacyCreatedAt}, Value: nullableText(legacyCreatedAt)},
		{Name: "updated_at", Sources: []int{legacyUpdatedAt, legacyCreatedAt}, Value: updatedAt},
		{Name: "cleaner_earnings", Sources: []int{legacyCleanerEarnings}, Value: nullableAmount(legacyCleanerEarnings)},
	}
}
