// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package backup

import "log/slog"

// Recorder grava uma ação no trilho de auditoria (ver logging.ActionLog).
type Recorder interface {
	Log(message string) error
}

// AuditTrail envolve um Recorder e transforma falhas de escrita em WARN no
// log de diagnóstico. O erro continua sendo devolvido para quem quiser
// avisar o operador, mas nenhuma operação é abortada por causa dele.
type AuditTrail struct {
	rec    Recorder
	logger *slog.Logger
}

// NewAuditTrail cria um AuditTrail sobre rec.
func NewAuditTrail(rec Recorder, logger *slog.Logger) *AuditTrail {
	return &AuditTrail{rec: rec, logger: logger}
}

// Log grava message; em caso de erro, emite um WARN e devolve o erro.
func (a *AuditTrail) Log(message string) error {
	if err := a.rec.Log(message); err != nil {
		a.logger.Warn("could not write action log", "action", message, "error", err)
		return err
	}
	return nil
}
