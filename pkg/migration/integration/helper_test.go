// SPDX-License-Identifier: Apache-2.0

package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

const (
	knownCleanerLegacyID   = "6f1c2b9e-3a4d-4e5f-8a7b-1c2d3e4f5a6b"
	knownCleanerID         = "c1c1c1c1-0000-4000-8000-000000000001"
	unknownCleanerLegacyID = "0b7e8f2a-1111-4222-8333-944455556666"
)

func createCleaners(ctx context.Context) error {
	conn, err := pgx.Connect(ctx, pgurl)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE cleaners (id uuid PRIMARY KEY, cleaner_id uuid);
		INSERT INTO cleaners (id, cleaner_id) VALUES ('%s', '%s');`,
		knownCleanerLegacyID, knownCleanerID))
	return err
}

func createBookingsTable(t *testing.T, ctx context.Context, table string) {
	execQuery(t, ctx, fmt.Sprintf(`CREATE TABLE %s (
		id text PRIMARY KEY,
		booking_reference text NOT NULL,
		scheduled_date date,
		scheduled_time time,
		service_type text NOT NULL,
		frequency text NOT NULL,
		bedrooms int NOT NULL,
		bathrooms int NOT NULL,
		extras jsonb NOT NULL,
		street_address text,
		suburb text,
		city text,
		assigned_cleaner_id uuid,
		contact_first_name text,
		contact_last_name text,
		contact_email text,
		contact_phone text,
		payment_reference text,
		status text,
		payment_status text NOT NULL,
		total_amount numeric(10,2) NOT NULL,
		tip_amount numeric(10,2) NOT NULL,
		created_at timestamptz,
		updated_at timestamptz,
		cleaner_earnings numeric(10,2)
	)`, table))
}

func execQuery(t *testing.T, ctx context.Context, query string) {
	t.Helper()
	conn, err := pgx.Connect(ctx, pgurl)
	require.NoError(t, err)
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, query)
	require.NoError(t, err)
}

func applyMigration(t *testing.T, ctx context.Context, path string) {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	execQuery(t, ctx, string(content))
}

func queryRow(t *testing.T, ctx context.Context, query string, dest ...any) {
	t.Helper()
	conn, err := pgx.Connect(ctx, pgurl)
	require.NoError(t, err)
	defer conn.Close(ctx)

	require.NoError(t, conn.QueryRow(ctx, query).Scan(dest...))
}

type legacyBooking struct {
	id        string
	cleanerID string
	status    string
	name      string
}

func (b legacyBooking) tuple() string {
	fields := make([]string, 35)
	for i := range fields {
		fields[i] = "NULL"
	}
	fields[0] = "'" + b.id + "'"
	if b.cleanerID != "" {
		fields[1] = "'" + b.cleanerID + "'"
	}
	fields[2] = "'2024-03-01'"
	fields[3] = "'09:00'"
	fields[4] = "'Deep'"
	fields[5] = "'" + strings.ReplaceAll(b.name, "'", "''") + "'"
	fields[6] = "'jane@example.com'"
	fields[7] = "'082 123 4567'"
	fields[8] = `'12 O\'Connor St, Unit (4)'`
	fields[9] = "'Sea Point'"
	fields[10] = "'Cape Town'"
	fields[11] = "'PAY-1'"
	fields[12] = "'" + b.status + "'"
	fields[13] = "'2024-02-20 10:00:00+00'"
	fields[15] = "45050"
	fields[17] = "'Custom-Weekly'"
	fields[19] = `'{"service":{"bedrooms":3,"bathrooms":2},"extras":[{"name":"Inside \"oven\"","price":150}]}'`
	fields[24] = "'31500'"
	fields[32] = "'0'"
	return "(" + strings.Join(fields, ", ") + ")"
}

func writeLegacyDump(t *testing.T, bookings ...legacyBooking) string {
	t.Helper()
	tuples := make([]string, 0, len(bookings))
	for _, b := range bookings {
		tuples = append(tuples, b.tuple())
	}
	path := filepath.Join(t.TempDir(), "legacy_bookings.sql")
	content := "INSERT INTO public.bookings VALUES\n" + strings.Join(tuples, ",\n") + ";\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
