// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/shalean/bookingimport/pkg/migration"
)

// Configuration keys, as they appear in yaml config files.
const (
	ConfigKey           = "config"
	TableKey            = "import.table"
	CleanersTableKey    = "import.cleaners.table"
	CleanersURLKey      = "import.cleaners.url"
	ProgressIntervalKey = "import.progress.interval"
	ProgressBarKey      = "import.progress.bar"
	LogLevelKey         = "log.level"
)

// EnvPrefix is the prefix of every environment variable, and of every key in
// .env config files.
const EnvPrefix = "BOOKINGIMPORT"

// environment variable names, without prefix
var envNames = map[string]string{
	TableKey:            "TABLE",
	CleanersTableKey:    "CLEANERS_TABLE",
	CleanersURLKey:      "CLEANERS_URL",
	ProgressIntervalKey: "PROGRESS_INTERVAL",
	ProgressBarKey:      "PROGRESS_BAR",
	LogLevelKey:         "LOG_LEVEL",
}

var (
	errUnsupportedConfigFile   = errors.New("unsupported config file type, expected .yaml, .yml or .env")
	errInvalidProgressInterval = errors.New("progress interval must be positive")
)

// EnvName returns the environment variable that sets the key on input.
func EnvName(key string) string {
	return EnvPrefix + "_" + envNames[key]
}

// BindEnv makes every configuration key settable through its environment
// variable.
func BindEnv(v *viper.Viper) {
	for key := range envNames {
		v.BindEnv(key, EnvName(key)) //nolint:errcheck
	}
}

func Load(v *viper.Viper) error {
	return LoadFile(v, v.GetString(ConfigKey))
}

// LoadFile reads the yaml or .env config file on input, if any. Values in
// the file have lower precedence than flags and environment variables.
func LoadFile(v *viper.Viper, file string) error {
	if file == "" {
		return nil
	}

	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	switch ext {
	case "yaml", "yml":
	case "env":
		return loadEnvFile(v, file)
	default:
		return fmt.Errorf("%w: %s", errUnsupportedConfigFile, file)
	}

	v.SetConfigFile(file)
	v.SetConfigType(ext)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// loadEnvFile reads a .env file, whose keys are the environment variable
// names, and maps its values onto the configuration keys.
func loadEnvFile(v *viper.Viper, file string) error {
	envFile := viper.New()
	envFile.SetConfigFile(file)
	envFile.SetConfigType("env")
	if err := envFile.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	for key := range envNames {
		envKey := strings.ToLower(EnvName(key))
		if envFile.IsSet(envKey) {
			// defaults are still overridden by flags and environment
			v.SetDefault(key, envFile.Get(envKey))
		}
	}
	return nil
}

// ParseMigrationConfig builds the import configuration from the loaded
// configuration and the input and output paths on input.
func ParseMigrationConfig(v *viper.Viper, inputPath, outputPath string) (*migration.Config, error) {
	fileCfg := YAMLConfig{}
	if err := v.Unmarshal(&fileCfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return fileCfg.toMigrationConfig(inputPath, outputPath)
}

func LogLevel(v *viper.Viper) string {
	return v.GetString(LogLevelKey)
}

// flag names for the configuration keys
var flagNames = map[string]string{
	ConfigKey:           "config",
	TableKey:            "table",
	CleanersTableKey:    "cleaners-table",
	CleanersURLKey:      "cleaners-url",
	ProgressIntervalKey: "progress-interval",
	ProgressBarKey:      "progress-bar",
	LogLevelKey:         "log-level",
}

// BindFlags binds the flags on input to their configuration keys. Flags
// missing from the set are ignored.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for key, name := range flagNames {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}
