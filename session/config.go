package session

import (
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/dshills/msgbus/diag"
)

// Config describes the diagnostics surface of a session manager.
type Config struct {
	// LogLevel is the minimum severity emitted: trace, debug, info, warn
	// or error. Defaults to warn.
	LogLevel string `yaml:"log_level"`

	// TraceChannels narrows broadcast tracing to channels matching these
	// wildcard patterns (e.g. "Game.*"). Empty means trace everything at
	// the configured level.
	TraceChannels []string `yaml:"trace_channels"`
}

// DefaultConfig returns the config used when nothing is supplied.
func DefaultConfig() Config {
	return Config{LogLevel: "warn"}
}

// ParseConfig parses a yaml config document, applying defaults for empty
// fields.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse session config: %w", err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	return cfg, nil
}

// LoadConfig reads and parses a yaml config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load session config: %w", err)
	}
	return ParseConfig(data)
}

// BuildSink constructs the diagnostics sink the config describes: a
// production zap sink at the configured level, wrapped in a channel filter
// when trace patterns are set.
func (c Config) BuildSink() (diag.Sink, error) {
	sink, err := diag.NewProductionSink(zapLevel(c.LogLevel))
	if err != nil {
		return nil, err
	}
	return diag.Filtered(sink, c.TraceChannels...), nil
}

// zapLevel maps a config level name onto zap. Unknown names fall back to
// warn, matching the default.
func zapLevel(name string) zapcore.Level {
	switch name {
	case "trace", "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
