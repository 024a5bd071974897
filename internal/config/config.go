// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

// Package config carrega a configuração opcional do safebackup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath é o arquivo de configuração procurado no diretório de trabalho.
const DefaultPath = "safebackup.yaml"

// DefaultAuditFile é o log de ações usado quando audit.file não é informado.
const DefaultAuditFile = "logfile.txt"

// DefaultBufferSize é o tamanho padrão do buffer de escrita da cópia (256KB).
const DefaultBufferSize = 256 * 1024

// Config representa a configuração completa do safebackup.
type Config struct {
	Audit   AuditInfo   `yaml:"audit"`
	Copy    CopyInfo    `yaml:"copy"`
	Logging LoggingInfo `yaml:"logging"`
}

// AuditInfo aponta para o log de ações (append-only, nunca rotacionado).
type AuditInfo struct {
	File string `yaml:"file"`
}

// CopyInfo contém os parâmetros da cópia de bytes.
type CopyInfo struct {
	BufferSize        string `yaml:"buffer_size"`     // ex: "256kb" (default: 256kb)
	BufferSizeRaw     int64  `yaml:"-"`               // valor parseado em bytes
	BandwidthLimit    string `yaml:"bandwidth_limit"` // bytes/s, "0" = sem limite
	BandwidthLimitRaw int64  `yaml:"-"`
	MinFreeSpace      string `yaml:"min_free_space"` // folga exigida após a cópia
	MinFreeSpaceRaw   int64  `yaml:"-"`
	CheckFreeSpace    *bool  `yaml:"check_free_space"` // nil = true
}

// FreeSpaceCheckEnabled informa se o preflight de espaço livre deve rodar.
func (c CopyInfo) FreeSpaceCheckEnabled() bool {
	return c.CheckFreeSpace == nil || *c.CheckFreeSpace
}

// LoggingInfo contém configurações do log de diagnóstico (slog).
type LoggingInfo struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`         // vazio = stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`  // rotação via lumberjack
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Load lê e valida o arquivo YAML de configuração.
// Se o arquivo não existir, retorna a configuração default.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// sem arquivo: segue com defaults
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Default retorna a configuração default já validada.
func Default() *Config {
	var cfg Config
	// defaults nunca falham na validação
	_ = cfg.validate()
	return &cfg
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Audit.File) == "" {
		c.Audit.File = DefaultAuditFile
	}

	// Copy defaults
	if c.Copy.BufferSize == "" {
		c.Copy.BufferSize = "256kb"
	}
	bufSize, err := ParseByteSize(c.Copy.BufferSize)
	if err != nil {
		return fmt.Errorf("copy.buffer_size: %w", err)
	}
	if bufSize < 4*1024 {
		return fmt.Errorf("copy.buffer_size must be at least 4kb, got %s", c.Copy.BufferSize)
	}
	if bufSize > 16*1024*1024 {
		return fmt.Errorf("copy.buffer_size must be at most 16mb, got %s", c.Copy.BufferSize)
	}
	c.Copy.BufferSizeRaw = bufSize

	if c.Copy.BandwidthLimit == "" {
		c.Copy.BandwidthLimit = "0"
	}
	limit, err := ParseByteSize(c.Copy.BandwidthLimit)
	if err != nil {
		return fmt.Errorf("copy.bandwidth_limit: %w", err)
	}
	if limit < 0 {
		return fmt.Errorf("copy.bandwidth_limit cannot be negative, got %s", c.Copy.BandwidthLimit)
	}
	c.Copy.BandwidthLimitRaw = limit

	if c.Copy.MinFreeSpace == "" {
		c.Copy.MinFreeSpace = "0"
	}
	minFree, err := ParseByteSize(c.Copy.MinFreeSpace)
	if err != nil {
		return fmt.Errorf("copy.min_free_space: %w", err)
	}
	if minFree < 0 {
		return fmt.Errorf("copy.min_free_space cannot be negative, got %s", c.Copy.MinFreeSpace)
	}
	c.Copy.MinFreeSpaceRaw = minFree

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = "warn"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = 10
	}
	if c.Logging.MaxBackups < 0 {
		return fmt.Errorf("logging.max_backups cannot be negative, got %d", c.Logging.MaxBackups)
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = 3
	}
	if c.Logging.MaxAgeDays <= 0 {
		c.Logging.MaxAgeDays = 28
	}

	return nil
}

// ParseByteSize converte strings human-readable como "256kb", "1mb" para bytes.
func ParseByteSize(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}

	// Ordenado do sufixo mais longo para o mais curto
	// para evitar que "mb" matche como "b"
	type suffix struct {
		s string
		m int64
	}
	suffixes := []suffix{
		{"gb", 1024 * 1024 * 1024},
		{"mb", 1024 * 1024},
		{"kb", 1024},
		{"b", 1},
	}

	for _, sfx := range suffixes {
		if strings.HasSuffix(s, sfx.s) {
			numStr := strings.TrimSpace(strings.TrimSuffix(s, sfx.s))
			num, err := strconv.ParseInt(numStr, 10, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid number %q: %w", numStr, err)
			}
			return num * sfx.m, nil
		}
	}

	// Tenta interpretar como número puro (bytes)
	num, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("unknown size format %q", s)
	}
	return num, nil
}
