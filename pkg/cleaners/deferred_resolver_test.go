// SPDX-License-Identifier: Apache-2.0

package cleaners

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeferredResolver_Resolve(t *testing.T) {
	t.Parallel()

	const legacyID = "6f1c2b9e-3a4d-4e5f-8a7b-1c2d3e4f5a6b"

	tests := []struct {
		name    string
		table   string
		want    string
		wantErr bool
	}{
		{
			name:  "ok - default table",
			table: DefaultTable,
			want:  "(SELECT cleaner_id FROM cleaners WHERE id = '" + legacyID + "' LIMIT 1)",
		},
		{
			name:  "ok - schema qualified table",
			table: "legacy.cleaners",
			want:  "(SELECT cleaner_id FROM legacy.cleaners WHERE id = '" + legacyID + "' LIMIT 1)",
		},
		{
			name:  "ok - table name needing quotes",
			table: "Cleaners",
			want:  `(SELECT cleaner_id FROM "Cleaners" WHERE id = '` + legacyID + `' LIMIT 1)`,
		},
		{
			name:    "error - empty table",
			table:   "",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewDeferredResolver(tc.table)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			v, err := r.Resolve(legacyID)
			require.NoError(t, err)
			require.Equal(t, tc.want, v.SQL())
		})
	}
}
