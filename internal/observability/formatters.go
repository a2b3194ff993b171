// Package observability provides formatted output utilities for verbose and
// dry-run CLI modes.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mythic-saga/sheet-builder/internal/types"
)

// boxWidth is the default width for formatted output boxes
const boxWidth = 60

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRecord outputs the full character record dump, boxed.
func (p *Printer) PrintRecord(rec *types.CharacterRecord) {
	if rec == nil {
		return
	}
	p.printBox("CHARACTER RECORD", rec.String())
}

// PrintTemplates outputs the resolved template identifiers, boxed.
func (p *Printer) PrintTemplates(stID, stName, playerID, playerName, folderID string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ST template:     %s\n", stID))
	sb.WriteString(fmt.Sprintf("ST filename:     %s\n", stName))
	sb.WriteString(fmt.Sprintf("Player template: %s\n", playerID))
	sb.WriteString(fmt.Sprintf("Player filename: %s\n", playerName))
	sb.WriteString(fmt.Sprintf("Character folder: %s", folderID))
	p.printBox("TEMPLATES", sb.String())
}
