// Copyright (C) 2024, Chain4Travel AG. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"golang.org/x/term"
)

const wordWrap = 100

// markdownRenderer renders proposal bodies for the terminal. Output that
// isn't a terminal gets the plain style so it stays readable in files and
// pipes.
type markdownRenderer struct {
	renderer *glamour.TermRenderer
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newMarkdownRenderer(out io.Writer) (*markdownRenderer, error) {
	style := glamour.WithStandardStyle(styles.NoTTYStyle)
	if isTerminal(out) {
		style = glamour.WithAutoStyle()
	}
	renderer, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't create markdown renderer: %w", err)
	}
	return &markdownRenderer{renderer: renderer}, nil
}

func (r *markdownRenderer) render(markdown string) string {
	out, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
