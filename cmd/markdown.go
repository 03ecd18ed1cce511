/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// markdown.go renders markdown for terminals.
//
// Design: Terminal output gets glamour rendering for readability;
// pipe/redirect gets raw markdown for machine consumption and LLM context
// loading.

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// Terminal reports whether stdout is an interactive terminal.
func Terminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintMarkdown writes content to the output writer, rendered when stdout
// is a terminal and raw otherwise.
func PrintMarkdown(content string, raw bool) {
	if !raw && out == os.Stdout && Terminal() {
		if rendered, err := glamour.Render(content, "dark"); err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprint(out, content)
}
