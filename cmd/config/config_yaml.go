// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	"github.com/shalean/bookingimport/internal/backoff"
	"github.com/shalean/bookingimport/pkg/migration"
)

type YAMLConfig struct {
	Import ImportConfig `mapstructure:"import" yaml:"import"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

type ImportConfig struct {
	Table    string         `mapstructure:"table" yaml:"table"`
	Cleaners CleanersConfig `mapstructure:"cleaners" yaml:"cleaners"`
	Progress ProgressConfig `mapstructure:"progress" yaml:"progress"`
}

type CleanersConfig struct {
	Table   string         `mapstructure:"table" yaml:"table"`
	URL     string         `mapstructure:"url" yaml:"url"`
	Backoff *BackoffConfig `mapstructure:"backoff" yaml:"backoff,omitempty"`
}

type BackoffConfig struct {
	InitialInterval time.Duration `mapstructure:"initial_interval" yaml:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval" yaml:"max_interval"`
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time" yaml:"max_elapsed_time"`
	MaxRetries      uint          `mapstructure:"max_retries" yaml:"max_retries"`
}

type ProgressConfig struct {
	Interval int  `mapstructure:"interval" yaml:"interval"`
	Bar      bool `mapstructure:"bar" yaml:"bar"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

func (c *YAMLConfig) toMigrationConfig(inputPath, outputPath string) (*migration.Config, error) {
	if c.Import.Progress.Interval < 0 {
		return nil, errInvalidProgressInterval
	}

	return &migration.Config{
		InputPath:        inputPath,
		OutputPath:       outputPath,
		Table:            c.Import.Table,
		CleanersTable:    c.Import.Cleaners.Table,
		CleanersURL:      c.Import.Cleaners.URL,
		CleanersBackoff:  c.Import.Cleaners.Backoff.toBackoffConfig(),
		ProgressInterval: c.Import.Progress.Interval,
		ProgressBar:      c.Import.Progress.Bar,
	}, nil
}

func (c *BackoffConfig) toBackoffConfig() *backoff.Config {
	if c == nil {
		return nil
	}
	return &backoff.Config{
		InitialInterval: c.InitialInterval,
		MaxInterval:     c.MaxInterval,
		MaxElapsedTime:  c.MaxElapsedTime,
		MaxRetries:      c.MaxRetries,
	}
}
