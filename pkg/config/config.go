// Package config provides configuration loading and validation for codegauge.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers   = errors.New("workers must not be negative")
	ErrInvalidFormat    = errors.New("unknown output format")
	ErrInvalidCacheSize = errors.New("serve cache capacity must be positive")
	ErrInvalidInputCap  = errors.New("serve max input size must be positive")
	ErrInvalidDebounce  = errors.New("watch debounce must be positive")
	ErrInvalidLogLevel  = errors.New("unknown log level")
)

// Default configuration values.
const (
	defaultFormat        = "text"
	defaultCacheCapacity = 128
	defaultMaxInputSize  = 1 << 20
	defaultDebounce      = 300 * time.Millisecond
)

// Config holds all configuration for codegauge.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Serve    ServeConfig    `mapstructure:"serve"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig holds folder-analysis configuration.
type AnalysisConfig struct {
	// Format selects the report output: text, compact, json, yaml, plot, bin.
	Format string `mapstructure:"format"`

	// Analyzers holds registry IDs or globs; empty means all.
	Analyzers []string `mapstructure:"analyzers"`

	// Exclude holds path globs skipped during discovery.
	Exclude []string `mapstructure:"exclude"`

	// Ignore holds directory names skipped during discovery.
	Ignore []string `mapstructure:"ignore"`

	// IncludeNotebooks enables .ipynb code-cell extraction.
	IncludeNotebooks bool `mapstructure:"include_notebooks"`

	// Workers bounds cross-file parallelism; zero means NumCPU.
	Workers int `mapstructure:"workers"`
}

// ServeConfig holds MCP serve-mode configuration.
type ServeConfig struct {
	// CacheCapacity bounds the per-content result cache.
	CacheCapacity int `mapstructure:"cache_capacity"`

	// MaxInputSize caps tool input payloads in bytes.
	MaxInputSize int `mapstructure:"max_input_size"`

	// MetricsAddr exposes Prometheus metrics when non-empty, e.g. ":9090".
	MetricsAddr string `mapstructure:"metrics_addr"`
}

// WatchConfig holds watch-mode configuration.
type WatchConfig struct {
	// Debounce coalesces change bursts before re-running analysis.
	Debounce time.Duration `mapstructure:"debounce"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Load reads configuration from defaults, an optional file, and
// CODEGAUGE_* environment variables, in increasing precedence.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("codegauge")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("/etc/codegauge")
	}

	viperCfg.SetEnvPrefix("CODEGAUGE")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := validate(&config)
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("analysis.format", defaultFormat)
	viperCfg.SetDefault("analysis.analyzers", []string{})
	viperCfg.SetDefault("analysis.exclude", []string{})
	viperCfg.SetDefault("analysis.ignore", []string{})
	viperCfg.SetDefault("analysis.include_notebooks", false)
	viperCfg.SetDefault("analysis.workers", 0)

	viperCfg.SetDefault("serve.cache_capacity", defaultCacheCapacity)
	viperCfg.SetDefault("serve.max_input_size", defaultMaxInputSize)
	viperCfg.SetDefault("serve.metrics_addr", "")

	viperCfg.SetDefault("watch.debounce", defaultDebounce)

	viperCfg.SetDefault("logging.level", "info")
	viperCfg.SetDefault("logging.format", "text")
	viperCfg.SetDefault("logging.output", "stderr")
}

// knownFormats lists the supported report output formats.
//
//nolint:gochecknoglobals // fixed lookup table.
var knownFormats = map[string]struct{}{
	"text":    {},
	"compact": {},
	"json":    {},
	"yaml":    {},
	"plot":    {},
	"bin":     {},
}

// knownLogLevels lists the supported slog level names.
//
//nolint:gochecknoglobals // fixed lookup table.
var knownLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// validate checks the configuration.
func validate(config *Config) error {
	if _, ok := knownFormats[config.Analysis.Format]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, config.Analysis.Format)
	}

	if config.Analysis.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, config.Analysis.Workers)
	}

	if config.Serve.CacheCapacity <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCacheSize, config.Serve.CacheCapacity)
	}

	if config.Serve.MaxInputSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInputCap, config.Serve.MaxInputSize)
	}

	if config.Watch.Debounce <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDebounce, config.Watch.Debounce)
	}

	if _, ok := knownLogLevels[config.Logging.Level]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, config.Logging.Level)
	}

	return nil
}
