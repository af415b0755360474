// SPDX-License-Identifier: Apache-2.0

package migration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/shalean/bookingimport/pkg/literal"
	loglib "github.com/shalean/bookingimport/pkg/log"
)

var testTime = time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)

const (
	testCleanerLegacyID = "6f1c2b9e-3a4d-4e5f-8a7b-1c2d3e4f5a6b"
	testCleanerID       = "c1c1c1c1-0000-4000-8000-000000000001"
)

// legacyTuple renders a 35 field legacy booking row.
func legacyTuple(bookingID, cleanerID string) string {
	fields := make([]string, 35)
	for i := range fields {
		fields[i] = "NULL"
	}
	fields[0] = "'" + bookingID + "'"
	if cleanerID != "" {
		fields[1] = "'" + cleanerID + "'"
	}
	fields[2] = "'2024-03-01'"
	fields[3] = "'09:00'"
	fields[4] = "'Standard'"
	fields[5] = "'Jane Doe'"
	fields[6] = "'jane@example.com'"
	fields[7] = "'082 123 4567'"
	fields[8] = "'1 Main Rd, Unit (4)'"
	fields[9] = "'Sea Point'"
	fields[10] = "'Cape Town'"
	fields[11] = "'PAY-1'"
	fields[12] = "'completed'"
	fields[13] = "'2024-02-20 10:00:00+00'"
	fields[15] = "45000"
	fields[17] = "'weekly'"
	fields[19] = `'{"service":{"bedrooms":2,"bathrooms":1},"extras":[]}'`
	return "(" + strings.Join(fields, ", ") + ")"
}

func legacyStatement(tuples ...string) string {
	return "INSERT INTO public.bookings VALUES\n" + strings.Join(tuples, ",\n") + ";\n"
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookings.sql")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func testOptions(out *strings.Builder) []Option {
	return []Option{
		WithOutput(out),
		WithClock(clockwork.NewFakeClockAt(testTime)),
	}
}

// valueTuples returns the value tuples in a generated migration.
func valueTuples(migration string) []string {
	tuples := []string{}
	for _, line := range strings.Split(migration, "\n") {
		if strings.HasPrefix(line, "('") {
			tuples = append(tuples, line)
		}
	}
	return tuples
}

type warning struct {
	err    error
	msg    string
	fields loglib.Fields
}

type testLogger struct {
	loglib.NoopLogger
	mu       sync.Mutex
	warnings []warning
}

func (l *testLogger) Warn(err error, msg string, fields ...loglib.Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	w := warning{err: err, msg: msg}
	if len(fields) > 0 {
		w.fields = fields[0]
	}
	l.warnings = append(l.warnings, w)
}

func (l *testLogger) WithFields(loglib.Fields) loglib.Logger {
	return l
}

type mockResolver struct {
	loadFn   func(ctx context.Context, ids []string) error
	resolved map[string]string
	closed   bool
}

func (m *mockResolver) Load(ctx context.Context, ids []string) error {
	return m.loadFn(ctx, ids)
}

func (m *mockResolver) Resolve(id string) (literal.Value, error) {
	cleanerID, found := m.resolved[id]
	if !found {
		return nil, fmt.Errorf("unknown cleaner %s", id)
	}
	return literal.Text(cleanerID), nil
}

func (m *mockResolver) Close(context.Context) error {
	m.closed = true
	return nil
}
