// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nishisan-dev/safebackup/internal/config"
)

// NewLogger cria o slog.Logger de diagnóstico com o nível, formato e output da config.
// Formatos suportados: "text" e "json" (default da config: text).
// Níveis suportados: "debug", "info", "warn" (default), "error".
// Se cfg.File não for vazio, grava num arquivo rotacionado pelo lumberjack;
// caso contrário grava em stderr, mantendo stdout livre para os prompts.
// Retorna o logger e um io.Closer que deve ser chamado no shutdown.
func NewLogger(cfg config.LoggingInfo) (*slog.Logger, io.Closer) {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg config.LoggingInfo, fallback io.Writer) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var w io.Writer = fallback
	var closer io.Closer = io.NopCloser(strings.NewReader(""))

	if strings.TrimSpace(cfg.File) != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		w = rotating
		closer = rotating
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler), closer
}

// Discard retorna um logger que descarta tudo. Útil em testes e como fallback.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
