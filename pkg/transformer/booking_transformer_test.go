// SPDX-License-Identifier: Apache-2.0

package transformer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/shalean/bookingimport/pkg/literal"
	"github.com/shalean/bookingimport/pkg/sqlvalues"
)

func TestTransformer_Transform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       sqlvalues.RawRow
		resolver  *mockResolver
		wantRow   []string
		wantErr   error
		wantCol   string
		wantIndex int
	}{
		{
			name:    "ok - complete row",
			raw:     newLegacyRow(nil),
			wantRow: wantRowSQL(nil),
		},
		{
			name: "ok - extra trailing legacy columns are ignored",
			raw:  append(newLegacyRow(nil), "'x'", "'y'", "42"),
			wantRow: wantRowSQL(nil),
		},
		{
			name: "ok - null cleaner",
			raw:  newLegacyRow(map[int]string{legacyCleanerID: "null"}),
			resolver: &mockResolver{
				resolveFn: func(id string) (literal.Value, error) {
					return nil, errors.New("resolveFn: should not be called")
				},
			},
			wantRow: wantRowSQL(map[string]string{"assigned_cleaner_id": "NULL"}),
		},
		{
			name: "ok - upper case cleaner uuid is normalized",
			raw:  newLegacyRow(map[int]string{legacyCleanerID: "'6F1C2B9E-3A4D-4E5F-8A7B-1C2D3E4F5A6B'"}),
			wantRow: wantRowSQL(nil),
		},
		{
			name: "ok - missing snapshot falls back to defaults",
			raw:  newLegacyRow(map[int]string{legacyPriceSnapshot: "null"}),
			wantRow: wantRowSQL(map[string]string{
				"bedrooms":  "0",
				"bathrooms": "1",
				"extras":    "'[]'::jsonb",
			}),
		},
		{
			name: "ok - malformed snapshot falls back to defaults",
			raw:  newLegacyRow(map[int]string{legacyPriceSnapshot: `'{"service":{"bedrooms":3'`}),
			wantRow: wantRowSQL(map[string]string{
				"bedrooms":  "0",
				"bathrooms": "1",
				"extras":    "'[]'::jsonb",
			}),
		},
		{
			name: "ok - normalization and defaults",
			raw: newLegacyRow(map[int]string{
				legacyServiceType:  "''",
				legacyFrequency:    "null",
				legacyStatus:       "'Cancelled'",
				legacyCustomerName: "'Madonna'",
				legacyTotalAmount:  "''",
				legacyTipAmount:    "null",
			}),
			wantRow: wantRowSQL(map[string]string{
				"service_type":       "'standard'",
				"frequency":          "'one-time'",
				"status":             "'cancelled'",
				"payment_status":     "'pending'",
				"contact_first_name": "'Madonna'",
				"contact_last_name":  "''",
				"total_amount":       "0",
				"tip_amount":         "0",
			}),
		},
		{
			name: "ok - null earnings stay null, zero earnings stay zero",
			raw:  newLegacyRow(map[int]string{legacyCleanerEarnings: "null", legacyTipAmount: "'0'"}),
			wantRow: wantRowSQL(map[string]string{
				"cleaner_earnings": "NULL",
				"tip_amount":       "0",
			}),
		},
		{
			name: "ok - zero earnings",
			raw:  newLegacyRow(map[int]string{legacyCleanerEarnings: "0"}),
			wantRow: wantRowSQL(map[string]string{
				"cleaner_earnings": "0",
			}),
		},
		{
			name: "ok - missing updated at defaults to created at",
			raw:  newLegacyRow(map[int]string{legacyUpdatedAt: "null"}),
			wantRow: wantRowSQL(map[string]string{
				"updated_at": "'2024-02-20 10:00:00+00'",
			}),
		},
		{
			name: "ok - quotes are escaped in every text column",
			raw: newLegacyRow(map[int]string{
				legacyCustomerName: `'Sean O\'Neil Smith'`,
				legacyEmail:        "'o''neil@example.com'",
				legacyCity:         "'Knysna'",
			}),
			wantRow: wantRowSQL(map[string]string{
				"contact_first_name": "'Sean'",
				"contact_last_name":  "'O''Neil Smith'",
				"contact_email":      "'o''neil@example.com'",
				"city":               "'Knysna'",
			}),
		},
		{
			name:      "error - too few fields",
			raw:       sqlvalues.RawRow{"'BK-1'", "null", "'2024-03-01'", "'09:00'", "'standard'", "'A B'", "'a@b.c'", "'1'", "'x'", "'y'"},
			wantErr:   ErrTooFewFields,
			wantIndex: 7,
		},
		{
			name:      "error - missing booking id",
			raw:       newLegacyRow(map[int]string{legacyBookingID: "null"}),
			wantErr:   errMissingBookingID,
			wantCol:   "id",
			wantIndex: 7,
		},
		{
			name:      "error - invalid cleaner id",
			raw:       newLegacyRow(map[int]string{legacyCleanerID: "'not-a-uuid'"}),
			wantErr:   errInvalidCleanerID,
			wantCol:   "assigned_cleaner_id",
			wantIndex: 7,
		},
		{
			name: "error - resolver failure",
			raw:  newLegacyRow(nil),
			resolver: &mockResolver{
				resolveFn: func(id string) (literal.Value, error) {
					return nil, errTestResolve
				},
			},
			wantErr:   errTestResolve,
			wantCol:   "assigned_cleaner_id",
			wantIndex: 7,
		},
		{
			name:      "error - non numeric amount",
			raw:       newLegacyRow(map[int]string{legacyTotalAmount: "'R450'"}),
			wantErr:   errInvalidAmount,
			wantCol:   "total_amount",
			wantIndex: 7,
		},
		{
			name:      "error - unexpected snapshot shape",
			raw:       newLegacyRow(map[int]string{legacyPriceSnapshot: `'{"service":{"bedrooms":{"min":1}}}'`}),
			wantErr:   errUnexpectedSnapshotShape,
			wantCol:   "bedrooms",
			wantIndex: 7,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resolver := tc.resolver
			if resolver == nil {
				resolver = &mockResolver{}
			}
			transformer, err := New(resolver)
			require.NoError(t, err)

			row, err := transformer.Transform(tc.raw, 7)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				var rowErr *RowError
				require.ErrorAs(t, err, &rowErr)
				require.Equal(t, tc.wantIndex, rowErr.Index)
				require.Equal(t, tc.wantCol, rowErr.Column)
				require.Nil(t, row)
				return
			}
			require.NoError(t, err)
			require.Len(t, row, len(transformer.Schema().ColumnNames()))
			if diff := cmp.Diff(tc.wantRow, rowSQL(row)); diff != "" {
				t.Errorf("unexpected row (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRowError_Error(t *testing.T) {
	t.Parallel()

	err := &RowError{Index: 3, BookingID: "BK-1", Column: "total_amount", Err: errInvalidAmount}
	require.Equal(t, "row 3 (booking BK-1): column total_amount: invalid amount", err.Error())

	err = &RowError{Index: 4, Err: ErrTooFewFields}
	require.Equal(t, "row 4: "+ErrTooFewFields.Error(), err.Error())
}

func TestCleanerIDs(t *testing.T) {
	t.Parallel()

	const otherID = "0b7e8f2a-1111-4222-8333-944455556666"
	rows := []sqlvalues.RawRow{
		newLegacyRow(nil),
		newLegacyRow(map[int]string{legacyCleanerID: "'" + otherID + "'"}),
		newLegacyRow(map[int]string{legacyCleanerID: "'6F1C2B9E-3A4D-4E5F-8A7B-1C2D3E4F5A6B'"}),
		newLegacyRow(map[int]string{legacyCleanerID: "null"}),
		newLegacyRow(map[int]string{legacyCleanerID: "'garbage'"}),
		{"'" + "5d2c2b9e-3a4d-4e5f-8a7b-1c2d3e4f5a6b" + "'"},
	}

	require.Equal(t, []string{otherID, testCleanerID}, CleanerIDs(rows))
	require.Empty(t, CleanerIDs(nil))
}
