package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mythic-saga/sheet-builder/internal/types"
)

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	rec := types.NewCharacterRecord()
	rec.Game = "scion"
	rec.Name = "Jo Hepburn"
	p.PrintRecord(rec)

	out := buf.String()
	assert.Contains(t, out, "CHARACTER RECORD")
	assert.Contains(t, out, "Game = scion")
	assert.Contains(t, out, "Name = Jo Hepburn")
	assert.True(t, strings.HasPrefix(out, "┌"))
}

func TestPrintRecordNil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintRecord(nil)
	assert.Empty(t, buf.String())
}

func TestPrintTemplates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTemplates("st-id", "ST name", "player-id", "Player name", "folder-id")

	out := buf.String()
	assert.Contains(t, out, "TEMPLATES")
	assert.Contains(t, out, "st-id")
	assert.Contains(t, out, "player-id")
	assert.Contains(t, out, "folder-id")
}

func TestPrintBoxTruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth, "line %q exceeds the box", line)
	}
}
