// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package backup

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind identifica a categoria de uma falha do safebackup.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidFilename
	KindPathTraversal
	KindFileNotFound
	KindPermissionDenied
	KindIO
)

// Sentinelas para uso com errors.Is.
var (
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTraversal    = errors.New("path traversal attempt")
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIO               = errors.New("io error")
)

// ErrInsufficientSpace é a causa de um KindIO gerado pelo preflight de espaço livre.
var ErrInsufficientSpace = errors.New("insufficient free space")

func (k Kind) String() string {
	switch k {
	case KindInvalidFilename:
		return "InvalidFilename"
	case KindPathTraversal:
		return "PathTraversal"
	case KindFileNotFound:
		return "FileNotFound"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindIO:
		return "IoError"
	default:
		return "Unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidFilename:
		return ErrInvalidFilename
	case KindPathTraversal:
		return ErrPathTraversal
	case KindFileNotFound:
		return ErrFileNotFound
	case KindPermissionDenied:
		return ErrPermissionDenied
	case KindIO:
		return ErrIO
	default:
		return nil
	}
}

// Error é o erro tipado retornado pelo validador e pelos handlers.
// Detail carrega o texto para o operador; Err, quando presente, é a causa
// original (tipicamente um *fs.PathError).
type Error struct {
	Kind   Kind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidFilename:
		return "Invalid filename: " + e.Detail
	case KindPathTraversal:
		return "Path traversal attempt: " + e.Detail
	case KindFileNotFound:
		return "File not found: " + e.Detail
	case KindPermissionDenied:
		return "Permission denied: " + e.Detail
	case KindIO:
		if e.Err != nil && e.Detail != "" {
			return fmt.Sprintf("IO Error: %s: %v", e.Detail, e.Err)
		}
		if e.Err != nil {
			return fmt.Sprintf("IO Error: %v", e.Err)
		}
		return "IO Error: " + e.Detail
	default:
		return e.Detail
	}
}

// Unwrap expõe a causa original.
func (e *Error) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrFileNotFound) e afins.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf retorna a categoria de err, ou KindUnknown se err não for um *Error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindUnknown
}

func invalidFilename(detail string) *Error {
	return &Error{Kind: KindInvalidFilename, Detail: detail}
}

func pathTraversal(name string) *Error {
	return &Error{Kind: KindPathTraversal, Detail: name}
}

func fileNotFound(name string) *Error {
	return &Error{Kind: KindFileNotFound, Detail: name}
}

// classify converte um erro do filesystem na categoria correspondente.
// subject é o nome exibido ao operador; se vazio, usa o texto do próprio erro.
// Erros que já são *Error passam inalterados.
func classify(err error, subject string) error {
	if err == nil {
		return nil
	}
	var be *Error
	if errors.As(err, &be) {
		return err
	}
	if subject == "" {
		subject = err.Error()
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Error{Kind: KindFileNotFound, Detail: subject, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &Error{Kind: KindPermissionDenied, Detail: subject, Err: err}
	default:
		return &Error{Kind: KindIO, Err: err}
	}
}
