// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package backup

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return data
}

func randomBytes(n int, seed uint64) []byte {
	r := rand.New(rand.NewPCG(seed, seed+1))
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(r.UintN(256))
	}
	return data
}

func TestCopyFile_CopiesAllBytes(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	// Maior que o buffer para forçar múltiplos flushes
	data := randomBytes(3*defaultBufferSize+123, 42)
	writeFile(t, src, data)

	res, err := CopyFile(context.Background(), src, dst, CopyOptions{})
	if err != nil {
		t.Fatalf("CopyFile: %v", err)
	}

	if res.Bytes != int64(len(data)) {
		t.Errorf("expected %d bytes, got %d", len(data), res.Bytes)
	}
	if res.Checksum != sha256.Sum256(data) {
		t.Error("checksum mismatch")
	}
	if !bytes.Equal(readFile(t, dst), data) {
		t.Error("destination content differs from source")
	}
}

func TestCopyFile_EmptySource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "empty")
	dst := filepath.Join(dir, "empty.bak")
	writeFile(t, src, nil)

	res, err := CopyFile(context.Background(), src, dst, CopyOptions{})
	if err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if res.Bytes != 0 {
		t.Errorf("expected 0 bytes, got %d", res.Bytes)
	}
	if fi, err := os.Stat(dst); err != nil || fi.Size() != 0 {
		t.Errorf("expected empty destination, stat=%v err=%v", fi, err)
	}
}

func TestCopyFile_TruncatesLongerDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "short")
	dst := filepath.Join(dir, "long")
	writeFile(t, src, []byte("short"))
	writeFile(t, dst, bytes.Repeat([]byte("L"), 10_000))

	if _, err := CopyFile(context.Background(), src, dst, CopyOptions{}); err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if got := string(readFile(t, dst)); got != "short" {
		t.Errorf("expected destination truncated to %q, got %d bytes", "short", len(got))
	}
}

func TestCopyFile_SmallBuffer(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	data := randomBytes(100_000, 7)
	writeFile(t, src, data)

	res, err := CopyFile(context.Background(), src, dst, CopyOptions{BufferSize: 4096})
	if err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if res.Bytes != int64(len(data)) || !bytes.Equal(readFile(t, dst), data) {
		t.Error("copy with small buffer produced wrong content")
	}
}

func TestCopyFile_WithBandwidthLimit(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	data := randomBytes(64*1024, 9)
	writeFile(t, src, data)

	// Limite alto o suficiente para o burst cobrir tudo sem atrasar o teste
	res, err := CopyFile(context.Background(), src, dst, CopyOptions{BandwidthLimit: 1024 * 1024})
	if err != nil {
		t.Fatalf("CopyFile: %v", err)
	}
	if res.Bytes != int64(len(data)) {
		t.Errorf("expected %d bytes, got %d", len(data), res.Bytes)
	}
}

func TestCopyFile_CanceledContextAbortsThrottledCopy(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, src, randomBytes(8*1024, 11))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := CopyFile(ctx, src, dst, CopyOptions{BandwidthLimit: 1024, BufferSize: 4096}); err == nil {
		t.Fatal("expected error with canceled context")
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "dst")

	_, err := CopyFile(context.Background(), filepath.Join(dir, "nope"), dst, CopyOptions{})
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
	if _, statErr := os.Stat(dst); !errors.Is(statErr, fs.ErrNotExist) {
		t.Error("destination must not be created when source is missing")
	}
}

func TestCopyFile_DestinationDirectoryMissing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeFile(t, src, []byte("data"))

	_, err := CopyFile(context.Background(), src, filepath.Join(dir, "no-dir", "dst"), CopyOptions{})
	if err == nil {
		t.Fatal("expected error when destination directory is missing")
	}
}

func TestCopyFile_SourceIsDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := CopyFile(context.Background(), dir, filepath.Join(dir, "dst"), CopyOptions{}); err == nil {
		t.Fatal("expected error when reading a directory")
	}
}
