// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

// Package backup implementa o núcleo do safebackup: validação de nomes,
// cópia de bytes e os handlers de backup, restore e delete.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// BackupSuffix é a extensão do artefato de backup.
const BackupSuffix = ".bak"

// BackupName retorna o nome do artefato de backup de name.
func BackupName(name string) string {
	return name + BackupSuffix
}

// Confirmer obtém a resposta do operador para uma pergunta de confirmação.
// Bloqueia até a resposta chegar; não há timeout.
type Confirmer interface {
	Confirm(prompt string) (string, error)
}

// HandlerConfig agrupa as dependências de um Handler.
type HandlerConfig struct {
	// Dir é o diretório onde os nomes são resolvidos. Vazio = diretório de trabalho.
	Dir string
	// Copy ajusta buffer e limite de banda da cópia.
	Copy CopyOptions
	// CheckFreeSpace habilita o preflight de espaço livre antes de cada cópia.
	CheckFreeSpace bool
	// MinFreeSpace é a folga, em bytes, exigida após a cópia.
	MinFreeSpace int64

	Recorder  Recorder
	Confirmer Confirmer
	Out       io.Writer
	Logger    *slog.Logger
}

// Handler executa os comandos backup, restore e delete sobre um único arquivo.
type Handler struct {
	dir     string
	opts    CopyOptions
	space   *SpaceChecker
	audit   Recorder
	confirm Confirmer
	out     io.Writer
	logger  *slog.Logger
}

// NewHandler cria um Handler a partir da config.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	out := cfg.Out
	if out == nil {
		out = io.Discard
	}

	h := &Handler{
		dir:     cfg.Dir,
		opts:    cfg.Copy,
		audit:   cfg.Recorder,
		confirm: cfg.Confirmer,
		out:     out,
		logger:  logger,
	}
	if cfg.CheckFreeSpace {
		h.space = NewSpaceChecker(cfg.MinFreeSpace, logger)
	}
	return h
}

// Backup copia filename para filename.bak, sobrescrevendo um backup anterior.
func (h *Handler) Backup(ctx context.Context, filename string) (CopyResult, error) {
	if err := ValidateFilename(filename, h.audit); err != nil {
		return CopyResult{}, err
	}

	backupName := BackupName(filename)

	fi, err := os.Stat(h.path(filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.record("Backup failed: File not found - " + filename)
			return CopyResult{}, fileNotFound(filename)
		}
		cerr := classify(err, filename)
		h.record(fmt.Sprintf("Backup failed: %s - %v", filename, cerr))
		return CopyResult{}, cerr
	}

	if !fi.Mode().IsRegular() {
		h.record("Backup failed: Not a regular file - " + filename)
		return CopyResult{}, invalidFilename("Target is not a regular file")
	}

	res, err := h.transfer(ctx, h.path(filename), h.path(backupName), fi.Size())
	if err != nil {
		h.record(fmt.Sprintf("Backup failed: %s - %v", filename, err))
		return CopyResult{}, err
	}

	fmt.Fprintf(h.out, "Your backup created: %s\n", backupName)
	h.record(fmt.Sprintf("Backup successful: %s -> %s (%d bytes)", filename, backupName, res.Bytes))
	h.logger.Info("backup completed",
		"src", filename,
		"dst", backupName,
		"bytes", res.Bytes,
		"sha256", fmt.Sprintf("%x", res.Checksum),
	)
	return res, nil
}

// Restore copia filename.bak de volta para filename, sobrescrevendo o original.
// O artefato de backup é apenas lido, nunca removido.
func (h *Handler) Restore(ctx context.Context, filename string) (CopyResult, error) {
	if err := ValidateFilename(filename, h.audit); err != nil {
		return CopyResult{}, err
	}

	backupName := BackupName(filename)

	fi, err := os.Stat(h.path(backupName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.record("Restore failed: Backup not found - " + backupName)
			return CopyResult{}, fileNotFound(backupName)
		}
		cerr := classify(err, backupName)
		h.record(fmt.Sprintf("Restore failed: %s - %v", filename, cerr))
		return CopyResult{}, cerr
	}

	if !fi.Mode().IsRegular() {
		h.record("Restore failed: Not a regular file - " + backupName)
		return CopyResult{}, invalidFilename("Backup is not a regular file")
	}

	res, err := h.transfer(ctx, h.path(backupName), h.path(filename), fi.Size())
	if err != nil {
		h.record(fmt.Sprintf("Restore failed: %s - %v", filename, err))
		return CopyResult{}, err
	}

	fmt.Fprintf(h.out, "File restored from: %s\n", backupName)
	h.record(fmt.Sprintf("Restore successful: %s -> %s (%d bytes)", backupName, filename, res.Bytes))
	h.logger.Info("restore completed",
		"src", backupName,
		"dst", filename,
		"bytes", res.Bytes,
		"sha256", fmt.Sprintf("%x", res.Checksum),
	)
	return res, nil
}

// Delete remove filename após confirmação explícita do operador.
// Só a resposta "yes" (sem diferenciar maiúsculas) remove o arquivo; qualquer
// outra resposta cancela a operação sem erro.
func (h *Handler) Delete(ctx context.Context, filename string) error {
	if err := ValidateFilename(filename, h.audit); err != nil {
		return err
	}

	path := h.path(filename)

	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.record("Delete failed: File not found - " + filename)
			return fileNotFound(filename)
		}
		cerr := classify(err, filename)
		h.record(fmt.Sprintf("Delete failed: %s - %v", filename, cerr))
		return cerr
	}

	// os.Remove também apagaria um diretório vazio
	if fi.IsDir() {
		h.record("Delete failed: Not a regular file - " + filename)
		return invalidFilename("Target is not a regular file")
	}

	if h.confirm == nil {
		return &Error{Kind: KindIO, Detail: "no confirmation source available"}
	}

	answer, err := h.confirm.Confirm(fmt.Sprintf("Are you sure you want to delete %s? (yes/no): ", filename))
	if err != nil {
		h.record(fmt.Sprintf("Delete failed: %s - %v", filename, err))
		return &Error{Kind: KindIO, Detail: "reading confirmation", Err: err}
	}

	if strings.ToLower(strings.TrimSpace(answer)) != "yes" {
		fmt.Fprintln(h.out, "Delete cancelled.")
		h.record("Delete cancelled by user: " + filename)
		return nil
	}

	if err := os.Remove(path); err != nil {
		h.record(fmt.Sprintf("Delete failed: %s - %v", filename, err))
		return classify(err, filename)
	}

	fmt.Fprintln(h.out, "File deleted.")
	h.record("Delete successful: " + filename)
	h.logger.Info("delete completed", "file", filename)
	return nil
}

// transfer executa o preflight de espaço e a cópia, classificando falhas.
func (h *Handler) transfer(ctx context.Context, src, dst string, size int64) (CopyResult, error) {
	if h.space != nil {
		if err := h.space.Check(dst, size); err != nil {
			return CopyResult{}, err
		}
	}

	res, err := CopyFile(ctx, src, dst, h.opts)
	if err != nil {
		return CopyResult{}, classify(err, "")
	}
	return res, nil
}

// record grava no trilho de auditoria; falhas já foram tratadas como aviso pelo Recorder.
func (h *Handler) record(message string) {
	if h.audit == nil {
		return
	}
	if err := h.audit.Log(message); err != nil {
		h.logger.Debug("action not recorded", "action", message, "error", err)
	}
}

func (h *Handler) path(name string) string {
	if h.dir == "" {
		return name
	}
	return filepath.Join(h.dir, name)
}
