// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package logging

import (
	"log/slog"

	"github.com/google/uuid"
)

// NewSessionLogger deriva do logger base um logger com o atributo "session",
// para correlacionar todos os registros de diagnóstico de uma execução.
// Retorna o logger enriquecido e o ID gerado (UUID v4).
func NewSessionLogger(base *slog.Logger) (*slog.Logger, string) {
	sessionID := uuid.NewString()
	return base.With("session", sessionID), sessionID
}
