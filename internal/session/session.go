// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

// Package session conduz a sessão interativa: lê nome e comando do operador,
// despacha para o handler e traduz o resultado em código de saída.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nishisan-dev/safebackup/internal/backup"
)

// Banner é o título impresso no início de cada sessão.
const Banner = "SafeBackup - Secure File Backup Utility"

// Códigos de saída do processo.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Operations é o conjunto de comandos que a sessão sabe despachar.
type Operations interface {
	Backup(ctx context.Context, filename string) (backup.CopyResult, error)
	Restore(ctx context.Context, filename string) (backup.CopyResult, error)
	Delete(ctx context.Context, filename string) error
}

// Config agrupa as dependências de uma Session.
type Config struct {
	Ops      Operations
	Recorder backup.Recorder
	Prompter *Prompter
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
}

// Session processa exatamente um comando do operador.
type Session struct {
	ops    Operations
	rec    backup.Recorder
	prompt *Prompter
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// New cria uma Session.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{
		ops:    cfg.Ops,
		rec:    cfg.Recorder,
		prompt: cfg.Prompter,
		stdout: cfg.Stdout,
		stderr: cfg.Stderr,
		logger: logger,
	}
}

// Run executa a sessão do banner até o fim e retorna o código de saída.
func (s *Session) Run(ctx context.Context) int {
	fmt.Fprintln(s.stdout, Banner)
	fmt.Fprintln(s.stdout, strings.Repeat("=", len(Banner)))

	if err := s.rec.Log("SafeBackup session started"); err != nil {
		fmt.Fprintf(s.stderr, "Warning: Could not write to log file: %v\n", err)
	}
	s.logger.Info("session started")

	filename, err := s.prompt.Ask("Please enter your file name: ")
	if err != nil {
		return s.terminate(err)
	}

	if err := backup.ValidateFilename(filename, s.rec); err != nil {
		return s.terminate(err)
	}

	command, err := s.prompt.Ask("Please enter your command (backup, restore, delete): ")
	if err != nil {
		return s.terminate(err)
	}
	command = strings.ToLower(command)

	if err := s.dispatch(ctx, command, filename); err != nil {
		if errors.Is(err, errUnknownCommand) {
			fmt.Fprintf(s.stderr, "Unknown command: %s\n", command)
			s.record("Unknown command attempted: " + command)
			s.logger.Warn("unknown command", "command", command)
			return ExitFailure
		}
		fmt.Fprintf(s.stderr, "Error: %v\n", err)
		s.record(fmt.Sprintf("Operation failed: %v", err))
		s.logger.Error("operation failed",
			"command", command,
			"file", filename,
			"kind", backup.KindOf(err).String(),
			"error", err,
		)
		return ExitFailure
	}

	s.record("Operation completed successfully")
	s.record("SafeBackup session ended")
	s.logger.Info("session ended", "command", command, "file", filename)
	return ExitOK
}

var errUnknownCommand = errors.New("unknown command")

func (s *Session) dispatch(ctx context.Context, command, filename string) error {
	switch command {
	case "backup":
		res, err := s.ops.Backup(ctx, filename)
		if err == nil {
			fmt.Fprintf(s.stdout, "Bytes copied: %d\n", res.Bytes)
		}
		return err
	case "restore":
		res, err := s.ops.Restore(ctx, filename)
		if err == nil {
			fmt.Fprintf(s.stdout, "Bytes copied: %d\n", res.Bytes)
		}
		return err
	case "delete":
		return s.ops.Delete(ctx, filename)
	default:
		return errUnknownCommand
	}
}

// terminate encerra a sessão antes do despacho.
func (s *Session) terminate(err error) int {
	fmt.Fprintf(s.stderr, "Error: %v\n", err)
	s.record(fmt.Sprintf("Session terminated: %v", err))
	s.logger.Warn("session terminated", "error", err)
	return ExitFailure
}

// record grava no trilho de auditoria; falhas já viraram WARN no Recorder.
func (s *Session) record(message string) {
	_ = s.rec.Log(message)
}
