// Package config defines landrank configuration and its loading.
//
// Conventions:
//   - Defaults live in New; Load layers an optional YAML file and env vars on top.
//   - Functions accept context.Context as the first parameter.
//   - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/okian/landrank/internal/domain/types"
)

// metricName matches Prometheus namespace, subsystem and label names.
var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// LogSource adds the calling file:line to every log record.
	LogSource bool `koanf:"log_source"`

	// DataPath is the epoch YAML file or directory read when --data is not given.
	DataPath string `koanf:"data_path"`

	// DefaultLimit is the result count used when --limit is not given. 0 means unlimited.
	DefaultLimit int `koanf:"default_limit"`

	// DefaultSort and DefaultOrder are used when --sort / --order are not given.
	DefaultSort  string `koanf:"default_sort"`
	DefaultOrder string `koanf:"default_order"`

	// AreaUnit is appended to area values in reports.
	AreaUnit string `koanf:"area_unit"`

	// MetricsFile, when set, receives a Prometheus text exposition after each run.
	MetricsFile string `koanf:"metrics_file"`

	// MetricsNamespace and MetricsSubsystem prefix every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
	MetricsSubsystem string `koanf:"metrics_subsystem"`

	// MetricsBuckets overrides the run duration histogram buckets (milliseconds).
	MetricsBuckets []float64 `koanf:"metrics_buckets"`

	// MetricsLabels are constant labels attached to every metric.
	MetricsLabels map[string]string `koanf:"metrics_labels"`

	// MaxPromptAttempts bounds how often an interactive question is re-asked.
	MaxPromptAttempts int `koanf:"max_prompt_attempts"`
}

// New creates a Config with defaults. Context is accepted first to follow the
// project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		DataPath:          "epochs",
		DefaultLimit:      0,
		DefaultSort:       "prestige",
		DefaultOrder:      "desc",
		AreaUnit:          " km²",
		MetricsFile:       "",
		MetricsNamespace:  "landrank",
		MetricsSubsystem:  "pipeline",
		MaxPromptAttempts: 3,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate(_ context.Context) error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.DataPath == "" {
		return fmt.Errorf("%w: data_path must not be empty", ErrInvalidConfig)
	}
	if c.DefaultLimit < 0 {
		return fmt.Errorf("%w: default_limit must not be negative", ErrInvalidConfig)
	}
	if _, err := types.ParseSortAttribute(c.DefaultSort); err != nil {
		return fmt.Errorf("%w: default_sort: %v", ErrInvalidConfig, err)
	}
	if _, err := types.ParseSortDirection(c.DefaultOrder); err != nil {
		return fmt.Errorf("%w: default_order: %v", ErrInvalidConfig, err)
	}
	for key, name := range map[string]string{"metrics_namespace": c.MetricsNamespace, "metrics_subsystem": c.MetricsSubsystem} {
		if !metricName.MatchString(name) {
			return fmt.Errorf("%w: %s %q is not a valid metric name part", ErrInvalidConfig, key, name)
		}
	}
	for i := 1; i < len(c.MetricsBuckets); i++ {
		if c.MetricsBuckets[i] <= c.MetricsBuckets[i-1] {
			return fmt.Errorf("%w: metrics_buckets must be strictly increasing", ErrInvalidConfig)
		}
	}
	for name := range c.MetricsLabels {
		if !metricName.MatchString(name) || strings.HasPrefix(name, "__") {
			return fmt.Errorf("%w: metrics_labels key %q is not a valid label name", ErrInvalidConfig, name)
		}
	}
	if c.MaxPromptAttempts < 1 {
		return fmt.Errorf("%w: max_prompt_attempts must be at least 1", ErrInvalidConfig)
	}
	return nil
}
