package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		fileType string
		id       string
		action   string
		expected string
	}{
		{"document", "document", "abc123", "", "https://docs.google.com/document/d/abc123"},
		{"document with edit", "document", "abc123", "edit", "https://docs.google.com/document/d/abc123/edit"},
		{"spreadsheet", "spreadsheets", "sheet1", "", "https://docs.google.com/spreadsheets/d/sheet1"},
		{"slide", "slide", "deck1", "", "https://docs.google.com/slide/d/deck1"},
		{"unknown type", "folder", "f1", "", "https://drive.google.com/open?id=f1"},
		{"empty type", "", "x1", "", "https://drive.google.com/open?id=x1"},
		{"action ignored on drive link", "file", "x1", "edit", "https://drive.google.com/open?id=x1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildURL(tt.fileType, tt.id, tt.action))
		})
	}
}

func TestBuildURLDeterministic(t *testing.T) {
	first := BuildURL("spreadsheets", "same-id", "edit")
	second := BuildURL("spreadsheets", "same-id", "edit")
	assert.Equal(t, first, second)
}

func TestExtractIDFromShareLink(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		expected string
	}{
		{"open link with id param", "https://drive.google.com/open?id=abc123", "abc123"},
		{"folder path link", "https://drive.google.com/drive/folders/folder456?usp=drive_link", "folder456"},
		{"spreadsheet path link", "https://docs.google.com/spreadsheets/d/sheet789", "sheet789"},
		{"bare id", "justanid", "justanid"},
		{"surrounding whitespace", "  https://drive.google.com/open?id=abc123  ", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractIDFromShareLink(tt.link))
		})
	}
}

func TestExtractIDRoundTripsBuildURL(t *testing.T) {
	id := "1A2b3C4d"
	assert.Equal(t, id, ExtractIDFromShareLink(BuildURL("spreadsheets", id, "")))
	assert.Equal(t, id, ExtractIDFromShareLink(BuildURL("folder", id, "")))
}

func TestTypeFromMIME(t *testing.T) {
	tests := []struct {
		name     string
		mime     string
		expected string
	}{
		{"document", "application/vnd.google-apps.document", "document"},
		{"spreadsheet", "application/vnd.google-apps.spreadsheet", "spreadsheets"},
		{"presentation", "application/vnd.google-apps.presentation", "slide"},
		{"generic file", "application/vnd.google-apps.file", "file"},
		{"folder unmapped", "application/vnd.google-apps.folder", ""},
		{"non-google mime", "application/pdf", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeFromMIME(tt.mime))
		})
	}
}

func TestCharacterNameFromTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{"name with splat", "Valid Name / Splat", "Valid Name"},
		{"no separator", "Invalid Name, Splat", "Invalid Name, Splat"},
		{"extra segments", "Name / Splat / Extra", "Name"},
		{"empty title", "", ""},
		{"leading whitespace", "  Padded Name / Splat", "Padded Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CharacterNameFromTitle(tt.title))
		})
	}
}

func TestTrimAndSplit(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"comma separated", "Sage,Liminal,Warrior", []string{"Sage", "Liminal", "Warrior"}},
		{"spaces", "Sage Liminal Warrior", []string{"Sage", "Liminal", "Warrior"}},
		{"mixed delimiters", "Sage, Liminal-Warrior.Healer", []string{"Sage", "Liminal", "Warrior", "Healer"}},
		{"percent delimiter", "Sage%Liminal", []string{"Sage", "Liminal"}},
		{"runs of delimiters", "Sage,, , Liminal", []string{"Sage", "Liminal"}},
		{"empty", "", nil},
		{"only delimiters", " ,.- ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrimAndSplit(tt.input))
		})
	}
}
