// SPDX-License-Identifier: Apache-2.0

package transformer

import (
	"errors"

	"github.com/shalean/bookingimport/pkg/literal"
	"github.com/shalean/bookingimport/pkg/sqlvalues"
)

const testCleanerID = "6f1c2b9e-3a4d-4e5f-8a7b-1c2d3e4f5a6b"

type mockResolver struct {
	resolveFn func(id string) (literal.Value, error)
}

func (m *mockResolver) Resolve(id string) (literal.Value, error) {
	if m.resolveFn != nil {
		return m.resolveFn(id)
	}
	return literal.Expr("cleaner(" + id + ")"), nil
}

var errTestResolve = errors.New("oh noes")

// newLegacyRow returns a well formed legacy booking row with the given
// positions overridden. Unset positions are NULL.
func newLegacyRow(overrides map[int]string) sqlvalues.RawRow {
	fields := map[int]string{
		legacyBookingID:        "'BK-1001'",
		legacyCleanerID:        "'" + testCleanerID + "'",
		legacyDate:             "'2024-03-01'",
		legacyTime:             "'09:00'",
		legacyServiceType:      "'Deep'",
		legacyCustomerName:     "'Jane Doe'",
		legacyEmail:            "'jane@example.com'",
		legacyPhone:            "'082 123 4567'",
		legacyStreetAddress:    "'12 O''Connor St'",
		legacySuburb:           "'Sea Point'",
		legacyCity:             "'Cape Town'",
		legacyPaymentReference: "'PAY-778'",
		legacyStatus:           "'Completed'",
		legacyCreatedAt:        "'2024-02-20 10:00:00+00'",
		legacyTotalAmount:      "45000",
		legacyServiceFee:       "'2500'",
		legacyFrequency:        "'Custom-Weekly'",
		legacyPriceSnapshot:    `'{"service":{"bedrooms":3,"bathrooms":2},"extras":[{"name":"oven"}]}'`,
		legacyCleanerEarnings:  "'31500'",
		legacyUpdatedAt:        "'2024-02-21 08:30:00+00'",
		legacyTipAmount:        "'5000'",
	}
	for pos, v := range overrides {
		fields[pos] = v
	}

	row := make(sqlvalues.RawRow, MinLegacyColumns)
	for i := range row {
		row[i] = "null"
		if v, found := fields[i]; found {
			row[i] = v
		}
	}
	return row
}

func rowSQL(row Row) []string {
	out := make([]string, 0, len(row))
	for _, v := range row {
		out = append(out, v.SQL())
	}
	return out
}

// wantRowSQL returns the rendered values of the default legacy row with the
// given target columns overridden.
func wantRowSQL(overrides map[string]string) []string {
	values := map[string]string{
		"id":                  "'BK-1001'",
		"booking_reference":   "'BK-1001'",
		"scheduled_date":      "'2024-03-01'",
		"scheduled_time":      "'09:00'",
		"service_type":        "'deep'",
		"frequency":           "'weekly'",
		"bedrooms":            "3",
		"bathrooms":           "2",
		"extras":              `'[{"name":"oven"}]'::jsonb`,
		"street_address":      "'12 O''Connor St'",
		"suburb":              "'Sea Point'",
		"city":                "'Cape Town'",
		"assigned_cleaner_id": "cleaner(" + testCleanerID + ")",
		"contact_first_name":  "'Jane'",
		"contact_last_name":   "'Doe'",
		"contact_email":       "'jane@example.com'",
		"contact_phone":       "'082 123 4567'",
		"payment_reference":   "'PAY-778'",
		"status":              "'completed'",
		"payment_status":      "'completed'",
		"total_amount":        "450",
		"tip_amount":          "50",
		"created_at":          "'2024-02-20 10:00:00+00'",
		"updated_at":          "'2024-02-21 08:30:00+00'",
		"cleaner_earnings":    "315",
	}
	for k, v := range overrides {
		values[k] = v
	}

	cols := BookingColumns()
	out := make([]string, 0, len(cols))
	for _, col := range cols {
		out = append(out, values[col.Name])
	}
	return out
}
