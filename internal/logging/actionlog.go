// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package logging

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// TimestampLayout é o formato do timestamp de cada registro do log de ações.
const TimestampLayout = "2006-01-02 15:04:05"

// ActionLog grava o trilho de auditoria do safebackup: um arquivo texto
// append-only com uma linha por ação, no formato
//
//	[YYYY-MM-DD HH:MM:SS] <ação>
//
// Cada chamada abre, escreve e fecha o arquivo. Nada é mantido aberto entre
// registros e o arquivo nunca é truncado nem rotacionado.
type ActionLog struct {
	path   string
	now    func() time.Time
	mirror *slog.Logger
}

// NewActionLog cria um ActionLog para o caminho informado.
// Se mirror não for nil, cada registro também é emitido em DEBUG no log de diagnóstico.
func NewActionLog(path string, mirror *slog.Logger) *ActionLog {
	return &ActionLog{
		path:   path,
		now:    time.Now,
		mirror: mirror,
	}
}

// Path retorna o caminho do arquivo de ações.
func (a *ActionLog) Path() string {
	return a.path
}

// Log faz append de um registro com timestamp local.
// Erros devem ser tratados pelo chamador como aviso, nunca como falha da operação.
func (a *ActionLog) Log(message string) error {
	f, err := os.OpenFile(a.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening action log %s: %w", a.path, err)
	}

	if _, err := f.WriteString(FormatRecord(a.now(), message)); err != nil {
		f.Close()
		return fmt.Errorf("writing action log %s: %w", a.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing action log %s: %w", a.path, err)
	}

	if a.mirror != nil {
		a.mirror.Debug("action recorded", "action", message)
	}
	return nil
}

// FormatRecord monta a linha do log de ações, incluindo o '\n' final.
func FormatRecord(t time.Time, message string) string {
	return fmt.Sprintf("[%s] %s\n", t.Format(TimestampLayout), message)
}
