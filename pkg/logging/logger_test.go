package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input LogLevel
		want  zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"INFO", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: LevelInfo, Output: &buf})

	logger.Info().Str("operation", "products").Msg("test message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["message"] != "test message" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["operation"] != "products" {
		t.Errorf("operation field = %v", entry["operation"])
	}
	if _, ok := entry["time"]; !ok {
		t.Error("timestamp missing")
	}
}

func TestSetup_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: LevelWarn, Output: &buf})

	logger.Info().Msg("should be filtered")
	logger.Warn().Msg("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Error("info message leaked through warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn message missing")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "1")

	cfg := FromEnv()
	if cfg.Level != LevelDebug {
		t.Errorf("Level = %v, want debug", cfg.Level)
	}
	if !cfg.Pretty {
		t.Error("LOG_PRETTY should enable pretty output")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_PRETTY", "")

	cfg := FromEnv()
	if cfg.Level != LevelInfo {
		t.Errorf("Level = %v, want info default", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("Pretty should default off")
	}
	if cfg.Output != DefaultConfig().Output {
		t.Error("Output should match the default")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != LevelInfo {
		t.Errorf("default level = %v, want info", cfg.Level)
	}
	if cfg.Pretty {
		t.Error("default output should be JSON, not pretty")
	}
}

func TestNewLogger_ComponentField(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: LevelInfo, Output: &buf})

	logger := NewLogger("shop-client")
	logger.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"shop-client"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}
