// SPDX-License-Identifier: Apache-2.0

package migration

import (
	"github.com/shalean/bookingimport/internal/backoff"
	"github.com/shalean/bookingimport/pkg/cleaners"
)

type Config struct {
	InputPath  string
	OutputPath string
	// Table is the target bookings table.
	Table         string
	CleanersTable string
	// CleanersURL enables resolving every legacy cleaner upfront against the
	// target database. When empty, cleaners are resolved by the database
	// applying the migration.
	CleanersURL     string
	CleanersBackoff *backoff.Config
	// ProgressInterval is the number of rows between progress lines.
	ProgressInterval int
	// ProgressBar renders a progress bar instead of progress lines.
	ProgressBar bool
}

const (
	DefaultOutputPath       = "supabase/migrations/055_import_bookings_data_transformed.sql"
	DefaultTable            = "bookings"
	DefaultProgressInterval = 100
)

func (c *Config) outputPath() string {
	if c.OutputPath == "" {
		return DefaultOutputPath
	}
	return c.OutputPath
}

func (c *Config) table() string {
	if c.Table == "" {
		return DefaultTable
	}
	return c.Table
}

func (c *Config) cleanersTable() string {
	if c.CleanersTable == "" {
		return cleaners.DefaultTable
	}
	return c.CleanersTable
}

func (c *Config) progressInterval() int {
	if c.ProgressInterval <= 0 {
		return DefaultProgressInterval
	}
	return c.ProgressInterval
}

func (c *Config) cleanersBackoff() *backoff.Config {
	if c.CleanersBackoff == nil {
		return backoff.DefaultConfig()
	}
	return c.CleanersBackoff
}
