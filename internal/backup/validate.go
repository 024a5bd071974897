// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package backup

import (
	"regexp"
	"strings"
)

// MaxFilenameLength é o comprimento máximo (em bytes) aceito para um nome de arquivo.
const MaxFilenameLength = 255

// filenamePattern define o único alfabeto aceito: letras ASCII, dígitos, '.', '-' e '_'.
var filenamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// filenameRule é uma regra da cadeia de validação: se violates for verdadeiro,
// reject produz o erro (e eventuais efeitos colaterais) e a cadeia para.
type filenameRule struct {
	violates func(name string) bool
	reject   func(name string, rec Recorder) error
}

// filenameRules é avaliada em ordem. A ordem importa: a checagem de traversal
// precede a de alfabeto para que "a/../b" gere PathTraversal auditado e não um
// InvalidFilename genérico.
var filenameRules = []filenameRule{
	{
		violates: func(name string) bool { return name == "" },
		reject: func(string, Recorder) error {
			return invalidFilename("Filename cannot be empty")
		},
	},
	{
		violates: containsTraversal,
		reject: func(name string, rec Recorder) error {
			if rec != nil {
				// Falha de log não muda o resultado da validação
				_ = rec.Log("Security: Path traversal attempt blocked - " + name)
			}
			return pathTraversal(name)
		},
	},
	{
		violates: func(name string) bool { return !filenamePattern.MatchString(name) },
		reject: func(string, Recorder) error {
			return invalidFilename("Filename contains invalid characters")
		},
	},
	{
		violates: func(name string) bool { return len(name) > MaxFilenameLength },
		reject: func(string, Recorder) error {
			return invalidFilename("Filename too long (max 255 characters)")
		},
	},
}

// ValidateFilename verifica se name é um nome de arquivo simples e seguro
// (um único componente, sem separadores nem "..").
// Não toca no filesystem; a única ação externa é registrar em rec as
// tentativas de path traversal. rec pode ser nil.
func ValidateFilename(name string, rec Recorder) error {
	for _, rule := range filenameRules {
		if rule.violates(name) {
			return rule.reject(name, rec)
		}
	}
	return nil
}

// containsTraversal detecta "..", '/' ou '\' em qualquer posição.
func containsTraversal(name string) bool {
	return strings.Contains(name, "..") || strings.ContainsAny(name, `/\`)
}
