// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// FromEnv builds a logger configuration from the LOG_LEVEL and
// LOG_PRETTY environment variables, falling back to the defaults for
// anything unset. This is the configuration surface of cmd/shop-proxy.
func FromEnv() Config {
	cfg := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = LogLevel(level)
	}
	cfg.Pretty = os.Getenv("LOG_PRETTY") != ""
	return cfg
}

// Setup configures the global zerolog logger and returns it. JSON
// output with timestamps unless Pretty asks for console rendering.
func Setup(cfg Config) zerolog.Logger {
	zerolog.SetGlobalLevel(parseLevel(cfg.Level))

	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: cfg.Output}
	}

	logger := zerolog.New(output).With().Timestamp().Logger()
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cache operations (hit/miss, key, tier, promotion)
//   - Fallback path resolution
//   - Request flow details
//
// Info: Normal operation events
//   - Successful requests
//   - Proxy startup/shutdown
//
// Warn: Warning conditions that don't prevent operation
//   - Swallowed durable store errors (treated as cache miss)
//   - Primary endpoint failures absorbed by a fallback path
//   - Soft-failing operations reporting safe defaults
//
// Error: Error conditions requiring attention
//   - Exhausted read paths (primary failed, secondary disabled)
//   - Failed writes (orders, customers, leads)
//   - Configuration errors
//
// Context Fields:
//   - endpoint: edge endpoint path
//   - operation: logical operation (products, product, settings, ...)
//   - error_class: error classification (transport, domain)
//   - cache_key: derived cache key
//   - cache_layer: cache tier answering a read (memory, durable)
//   - outcome: fallback outcome (hit, miss, error, disabled)
