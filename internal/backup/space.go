// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package backup

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"
)

// FreeSpaceFunc retorna os bytes livres do filesystem que contém path.
type FreeSpaceFunc func(path string) (uint64, error)

// diskFree consulta o filesystem via gopsutil.
func diskFree(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, err
	}
	return usage.Free, nil
}

// SpaceChecker é o preflight de espaço livre executado antes de cada cópia.
type SpaceChecker struct {
	free    FreeSpaceFunc
	minFree int64
	logger  *slog.Logger
}

// NewSpaceChecker cria um SpaceChecker que exige minFree bytes de folga após a cópia.
func NewSpaceChecker(minFree int64, logger *slog.Logger) *SpaceChecker {
	return &SpaceChecker{
		free:    diskFree,
		minFree: minFree,
		logger:  logger,
	}
}

// Check verifica se cabe copiar size bytes para dst.
// O tamanho atual de dst conta como recuperável, já que a cópia o trunca.
// Se o filesystem não puder ser consultado, emite WARN e libera a cópia.
func (c *SpaceChecker) Check(dst string, size int64) error {
	dir := filepath.Dir(dst)

	free, err := c.free(dir)
	if err != nil {
		c.logger.Warn("free space probe failed, skipping check", "dir", dir, "error", err)
		return nil
	}

	var reclaimable int64
	if fi, err := os.Stat(dst); err == nil && fi.Mode().IsRegular() {
		reclaimable = fi.Size()
	}

	need := max(size-reclaimable, 0) + c.minFree
	c.logger.Debug("free space check", "dst", dst, "need", need, "free", free)

	if uint64(need) > free {
		return &Error{
			Kind:   KindIO,
			Detail: fmt.Sprintf("%s needs %d bytes, %d available", dst, need, free),
			Err:    ErrInsufficientSpace,
		}
	}
	return nil
}
