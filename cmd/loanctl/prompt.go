package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"loantracker-backend/internal/history"
)

// lineAuthorizer reads one credential per line. An empty line or end of input
// cancels.
type lineAuthorizer struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *lineAuthorizer) Credential(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(p.out, "%s (empty to cancel): ", prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return "", history.ErrPromptCancelled
	}
	return line, nil
}
