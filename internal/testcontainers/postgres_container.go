// SPDX-License-Identifier: Apache-2.0

package testcontainers

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type Cleanup func() error

const postgresImage = "postgres:17-alpine"

// SetupPostgresContainer starts a disposable postgres server and sets the url
// on input to its connection string.
func SetupPostgresContainer(ctx context.Context, url *string) (Cleanup, error) {
	waitForLogs := wait.
		ForLog("database system is ready to accept connections").
		WithOccurrence(2).
		WithStartupTimeout(30 * time.Second)

	ctr, err := postgres.Run(ctx, postgresImage,
		postgres.WithDatabase("shalean"),
		testcontainers.WithWaitStrategy(waitForLogs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	*url, err = ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("retrieving connection string for postgres container: %w", err)
	}

	return func() error {
		return ctr.Terminate(ctx)
	}, nil
}
