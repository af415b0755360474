// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRowsBar(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	bar := NewRowsBarWithWriter(buf, 3, "transforming")
	for range 3 {
		require.NoError(t, bar.Add(1))
	}
	require.True(t, bar.IsFinished())
	require.NoError(t, bar.Close())

	require.Contains(t, buf.String(), "transforming")
}
