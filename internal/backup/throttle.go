// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package backup

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// maxBurstSize é o tamanho máximo de burst do rate limiter (256KB),
// alinhado ao buffer default da cópia.
const maxBurstSize = 256 * 1024

// ThrottledWriter é um io.Writer com rate limiting baseado em token bucket.
// Limita a taxa de escrita a bytesPerSec bytes/segundo.
type ThrottledWriter struct {
	w       io.Writer
	limiter *rate.Limiter
	ctx     context.Context
}

// NewThrottledWriter cria um ThrottledWriter com a taxa máxima em bytes/segundo.
// Se bytesPerSec <= 0, retorna o writer original sem throttle.
func NewThrottledWriter(ctx context.Context, w io.Writer, bytesPerSec int64) io.Writer {
	if bytesPerSec <= 0 {
		return w
	}

	burst := int(min(bytesPerSec, maxBurstSize))

	return &ThrottledWriter{
		w:       w,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), burst),
		ctx:     ctx,
	}
}

// Write implementa io.Writer com rate limiting.
// Escritas maiores que o burst são quebradas em pedaços.
func (tw *ThrottledWriter) Write(p []byte) (int, error) {
	written := 0

	for len(p) > 0 {
		chunk := min(len(p), tw.limiter.Burst())

		if err := tw.limiter.WaitN(tw.ctx, chunk); err != nil {
			return written, err
		}

		n, err := tw.w.Write(p[:chunk])
		written += n
		if err != nil {
			return written, err
		}

		p = p[n:]
	}

	return written, nil
}
