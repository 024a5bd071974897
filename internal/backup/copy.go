// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package backup

import (
	"bufio"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// defaultBufferSize é usado quando CopyOptions.BufferSize não é informado (256KB).
const defaultBufferSize = 256 * 1024

// CopyOptions ajusta o comportamento de CopyFile.
type CopyOptions struct {
	// BufferSize é o tamanho do buffer de escrita. 0 = 256KB.
	BufferSize int
	// BandwidthLimit limita a escrita em bytes/s. 0 = sem limite.
	BandwidthLimit int64
}

// CopyResult é o resultado de uma cópia bem-sucedida.
type CopyResult struct {
	Bytes    int64
	Checksum [32]byte // SHA-256 do conteúdo copiado
}

// CopyFile copia src para dst em streaming, sem carregar o arquivo em memória.
// dst é criado ou truncado. Em caso de sucesso, todos os bytes já passaram por
// flush e fsync antes do retorno. Qualquer falha de open, read, write, flush,
// sync ou close aborta a cópia e é devolvida com a causa original; os dois
// handles são fechados em todos os caminhos. Uma falha no meio da cópia pode
// deixar dst truncado.
func CopyFile(ctx context.Context, src, dst string, opts CopyOptions) (CopyResult, error) {
	in, err := os.Open(src)
	if err != nil {
		return CopyResult{}, fmt.Errorf("opening source %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return CopyResult{}, fmt.Errorf("creating destination %s: %w", dst, err)
	}
	closed := false
	defer func() {
		if !closed {
			out.Close()
		}
	}()

	bufSize := opts.BufferSize
	if bufSize <= 0 {
		bufSize = defaultBufferSize
	}

	// Buffer de escrita para reduzir syscalls; o throttle fica entre o buffer e o arquivo
	bufDest := bufio.NewWriterSize(NewThrottledWriter(ctx, out, opts.BandwidthLimit), bufSize)

	// Hash inline sobre o mesmo stream
	hasher := sha256.New()
	counter := &countWriter{w: io.MultiWriter(bufDest, hasher)}

	if _, err := io.Copy(counter, in); err != nil {
		return CopyResult{}, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}

	if err := bufDest.Flush(); err != nil {
		return CopyResult{}, fmt.Errorf("flushing %s: %w", dst, err)
	}

	if err := out.Sync(); err != nil {
		return CopyResult{}, fmt.Errorf("syncing %s: %w", dst, err)
	}

	closed = true
	if err := out.Close(); err != nil {
		return CopyResult{}, fmt.Errorf("closing %s: %w", dst, err)
	}

	var res CopyResult
	res.Bytes = counter.n
	copy(res.Checksum[:], hasher.Sum(nil))
	return res, nil
}

// countWriter conta os bytes aceitos pelo writer de destino.
type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
