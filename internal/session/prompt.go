// Copyright (c) 2025 Nishisan. All rights reserved.
// Use of this source code is governed by the N-Backup License (Non-Commercial Evaluation)
// that can be found in the LICENSE file.

package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter lê respostas linha a linha do operador.
// Um único bufio.Reader é compartilhado entre todas as perguntas, inclusive a
// confirmação do delete, para não perder bytes já bufferizados.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter cria um Prompter que escreve as perguntas em out e lê de in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Ask imprime prompt e bloqueia até receber uma linha, sem timeout.
// A linha volta sem espaços nas pontas. EOF conta como fim de linha: sem
// dados, a resposta é vazia.
func (p *Prompter) Ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Confirm implementa backup.Confirmer.
func (p *Prompter) Confirm(prompt string) (string, error) {
	return p.Ask(prompt)
}
