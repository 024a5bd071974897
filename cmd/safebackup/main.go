// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nishisan-dev/safebackup/internal/backup"
	"github.com/nishisan-dev/safebackup/internal/config"
	"github.com/nishisan-dev/safebackup/internal/logging"
	"github.com/nishisan-dev/safebackup/internal/session"
)

func main() {
	os.Exit(run())
}

// run monta as dependências e executa uma sessão; main só traduz o código de saída.
func run() int {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return session.ExitFailure
	}

	baseLogger, logCloser := logging.NewLogger(cfg.Logging)
	defer logCloser.Close()

	logger, _ := logging.NewSessionLogger(baseLogger)
	logger.Debug("config loaded",
		"path", config.DefaultPath,
		"audit_file", cfg.Audit.File,
		"buffer_size", cfg.Copy.BufferSizeRaw,
		"bandwidth_limit", cfg.Copy.BandwidthLimitRaw,
	)

	audit := backup.NewAuditTrail(logging.NewActionLog(cfg.Audit.File, logger), logger)
	prompter := session.NewPrompter(os.Stdin, os.Stdout)

	handler := backup.NewHandler(backup.HandlerConfig{
		Copy: backup.CopyOptions{
			BufferSize:     int(cfg.Copy.BufferSizeRaw),
			BandwidthLimit: cfg.Copy.BandwidthLimitRaw,
		},
		CheckFreeSpace: cfg.Copy.FreeSpaceCheckEnabled(),
		MinFreeSpace:   cfg.Copy.MinFreeSpaceRaw,
		Recorder:       audit,
		Confirmer:      prompter,
		Out:            os.Stdout,
		Logger:         logger,
	})

	s := session.New(session.Config{
		Ops:      handler,
		Recorder: audit,
		Prompter: prompter,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Logger:   logger,
	})
	return s.Run(context.Background())
}
