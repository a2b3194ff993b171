// Package types provides the data models shared across the sheet-builder workflow.
package types

import (
	"fmt"
	"strings"
	"time"
)

// SanctionDateLayout is the display layout for sanction dates (MM/DD/YYYY).
const SanctionDateLayout = "01/02/2006"

// SheetKind identifies one of the two per-character spreadsheets.
type SheetKind string

// The two spreadsheet kinds every character owns.
const (
	SheetST     SheetKind = "st"
	SheetPlayer SheetKind = "player"
)

// Label returns the human-readable name of the sheet kind.
func (k SheetKind) Label() string {
	switch k {
	case SheetST:
		return "ST"
	case SheetPlayer:
		return "Player"
	}
	return string(k)
}

// CharacterRecord carries everything needed to provision one character.
// One record exists per provisioning run; it is validated once before any
// backend mutation and discarded after the workflow's terminal step.
type CharacterRecord struct {
	Game string

	// Source character document (a Google Doc).
	SheetID  string
	SheetURL string

	// Name is never caller-supplied; it is derived from the source
	// document title during the gather step.
	Name string

	Storyteller string
	Email       string
	Callings    []string

	// GivenSanctionDate holds the raw date override, if any. When set it
	// must parse under one of the accepted layouts; the parsed value is
	// assigned to SanctionDate during validation.
	GivenSanctionDate string
	SanctionDate      time.Time

	MasterlistID  string
	MasterlistURL string

	PlayerSheetID  string
	PlayerSheetURL string
	STSheetID      string
	STSheetURL     string

	UpdatePlayerSheet bool
	UpdateSTSheet     bool

	OverrideValidation bool
	DryRun             bool
}

// NewCharacterRecord returns a record with the defaults every entry path
// shares: both update steps enabled and the sanction date set to now.
func NewCharacterRecord() *CharacterRecord {
	return &CharacterRecord{
		SanctionDate:      time.Now(),
		UpdatePlayerSheet: true,
		UpdateSTSheet:     true,
	}
}

// Sheet returns the ID and URL for the given sheet kind.
func (c *CharacterRecord) Sheet(kind SheetKind) (id, url string) {
	switch kind {
	case SheetST:
		return c.STSheetID, c.STSheetURL
	case SheetPlayer:
		return c.PlayerSheetID, c.PlayerSheetURL
	}
	return "", ""
}

// SetSheet stores the ID and URL for the given sheet kind.
func (c *CharacterRecord) SetSheet(kind SheetKind, id, url string) {
	switch kind {
	case SheetST:
		c.STSheetID = id
		c.STSheetURL = url
	case SheetPlayer:
		c.PlayerSheetID = id
		c.PlayerSheetURL = url
	}
}

// FormattedSanctionDate renders the sanction date using the given layout,
// defaulting to MM/DD/YYYY.
func (c *CharacterRecord) FormattedSanctionDate(layout ...string) string {
	l := SanctionDateLayout
	if len(layout) > 0 && layout[0] != "" {
		l = layout[0]
	}
	return c.SanctionDate.Format(l)
}

// WrappedCallings returns the callings as single-cell rows, the shape the
// spreadsheet backend expects for a one-column range write.
func (c *CharacterRecord) WrappedCallings() [][]string {
	wrapped := make([][]string, 0, len(c.Callings))
	for _, calling := range c.Callings {
		wrapped = append(wrapped, []string{calling})
	}
	return wrapped
}

// String renders the record as the multi-line dump shown in dry-run mode.
func (c *CharacterRecord) String() string {
	lines := []string{
		fmt.Sprintf("Game = %s", c.Game),
		fmt.Sprintf("Sheet ID = %s", c.SheetID),
		fmt.Sprintf("Sheet URL = %s", c.SheetURL),
		fmt.Sprintf("Player Spreadsheet ID = %s", c.PlayerSheetID),
		fmt.Sprintf("Player Spreadsheet URL = %s", c.PlayerSheetURL),
		fmt.Sprintf("ST Spreadsheet ID = %s", c.STSheetID),
		fmt.Sprintf("ST Spreadsheet URL = %s", c.STSheetURL),
		fmt.Sprintf("Name = %s", c.Name),
		fmt.Sprintf("Storyteller = %s", c.Storyteller),
		fmt.Sprintf("Email = %s", c.Email),
		fmt.Sprintf("Callings = %s", strings.Join(c.Callings, ", ")),
		fmt.Sprintf("Sanctioning Date = %s", c.FormattedSanctionDate()),
		fmt.Sprintf("Game Masterlist ID = %s", c.MasterlistID),
		fmt.Sprintf("Game Masterlist URL = %s", c.MasterlistURL),
	}
	return strings.Join(lines, "\n")
}
