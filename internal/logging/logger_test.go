// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nishisan-dev/safebackup/internal/config"
)

func TestNewLogger_TextToFallback(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := newLogger(config.LoggingInfo{Level: "info", Format: "text"}, &buf)
	defer closer.Close()

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "key=value") {
		t.Errorf("expected text record, got: %s", out)
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := newLogger(config.LoggingInfo{Level: "info", Format: "json"}, &buf)
	defer closer.Close()

	logger.Info("hello", "key", "value")

	if !strings.Contains(buf.String(), `"key":"value"`) {
		t.Errorf("expected json record, got: %s", buf.String())
	}
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	// Nível default (warn) não aceita INFO
	logger, closer := newLogger(config.LoggingInfo{Format: "text"}, &buf)
	defer closer.Close()

	logger.Info("should be dropped")
	logger.Warn("should appear")

	if strings.Contains(buf.String(), "should be dropped") {
		t.Error("INFO record should be filtered at default level")
	}
	if !strings.Contains(buf.String(), "should appear") {
		t.Error("WARN record missing")
	}
}

func TestNewLogger_WritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	var fallback bytes.Buffer

	logger, closer := newLogger(config.LoggingInfo{
		Level:      "debug",
		Format:     "json",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}, &fallback)

	logger.Debug("into the file")
	if err := closer.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "into the file") {
		t.Errorf("record not found in file: %s", data)
	}
	if fallback.Len() != 0 {
		t.Errorf("fallback writer should stay empty when file is set, got: %s", fallback.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" ERROR ", slog.LevelError},
		{"", slog.LevelWarn},
		{"unknown", slog.LevelWarn},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
