// Package pipeline provides the high-level orchestration for provisioning
// one character: gather → resolve templates → create-or-reuse spreadsheets →
// permissions → masterlist row → sheet updates → profile artifact.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mythic-saga/sheet-builder/internal/config"
	"github.com/mythic-saga/sheet-builder/internal/db"
	"github.com/mythic-saga/sheet-builder/internal/gateway"
	"github.com/mythic-saga/sheet-builder/internal/observability"
	"github.com/mythic-saga/sheet-builder/internal/sheets"
	"github.com/mythic-saga/sheet-builder/internal/types"
)

// Cell ranges the workflow is built around. The masterlist's Overview tab
// links the two templates and the destination folder; each per-character ST
// sheet mirrors the character data into its own Overview tab.
const (
	templateRange    = "Overview!W5:W7"
	characterRange   = "Overview!B1:B6"
	callingsRange    = "Overview!Q2:Q4"
	floorXPSource    = "'XP log'!J2"
	floorXPTarget    = "'XP log'!L2"
	playerLinkTarget = "Overview--read only!A1"
	stImportRange    = "Overview!A1:P20"
)

// templatePlaceholder is the literal token in template display names that
// gets replaced by the character name.
const templatePlaceholder = "<Template>"

// DefaultProfileFilename is the profile artifact name inside the output
// directory.
const DefaultProfileFilename = "discord.txt"

// Options holds everything Provision needs for one character.
type Options struct {
	Record  *types.CharacterRecord
	Config  *config.Config
	Gateway gateway.Gateway

	// Database is optional; when set, the run and its artifacts are
	// persisted (live mode only).
	Database *db.DB

	Printer         *observability.Printer
	OutputDir       string
	ProfileFilename string
	Verbose         bool
}

// resolvedTemplates carries the per-game template identifiers looked up from
// the masterlist, with display names already stamped with the character name.
type resolvedTemplates struct {
	stID       string
	stName     string
	playerID   string
	playerName string
	folderID   string
}

func (t *resolvedTemplates) forKind(kind types.SheetKind) (id, name string) {
	if kind == types.SheetST {
		return t.stID, t.stName
	}
	return t.playerID, t.playerName
}

// Provision runs the full provisioning workflow for one character. The
// record must already be validated. Steps are strictly sequential; any
// gateway failure aborts the character with no rollback. In dry-run mode
// every read and computation still happens but every mutation is replaced
// by a log line.
func Provision(ctx context.Context, opts Options) error {
	rec := opts.Record

	if opts.Printer == nil {
		opts.Printer = observability.NewPrinter(os.Stdout)
	}
	if opts.ProfileFilename == "" {
		opts.ProfileFilename = DefaultProfileFilename
	}

	fmt.Printf("Step 1/8: Gathering character information...\n")
	if err := gatherInformation(ctx, opts); err != nil {
		return fmt.Errorf("gathering information failed: %w", err)
	}

	var runID uuid.UUID
	if opts.Database != nil && !rec.DryRun {
		id, err := opts.Database.CreateRun(ctx, rec.Game, rec.Name, rec.Storyteller)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
		} else {
			runID = id
			_ = opts.Database.SaveArtifact(ctx, runID, db.StepRecord, db.CategoryResolution, rec)
		}
	}

	fmt.Printf("Step 2/8: Resolving game templates...\n")
	tmpl, err := resolveTemplates(ctx, opts)
	if err != nil {
		return fmt.Errorf("resolving templates failed: %w", err)
	}
	if opts.Database != nil && runID != uuid.Nil {
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepTemplates, db.CategoryResolution, map[string]string{
			"st_template":      tmpl.stID,
			"player_template":  tmpl.playerID,
			"character_folder": tmpl.folderID,
		})
	}

	fmt.Printf("Step 3/8: Creating or reusing spreadsheets...\n")
	if err := createSpreadsheets(ctx, opts, tmpl); err != nil {
		return fmt.Errorf("creating spreadsheets failed: %w", err)
	}
	if opts.Database != nil && runID != uuid.Nil {
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepSpreadsheets, db.CategoryCreation, map[string]string{
			"st_sheet":     rec.STSheetID,
			"player_sheet": rec.PlayerSheetID,
		})
	}

	fmt.Printf("Step 4/8: Updating permissions...\n")
	if err := updatePermissions(ctx, opts); err != nil {
		return fmt.Errorf("updating permissions failed: %w", err)
	}

	fmt.Printf("Step 5/8: Appending masterlist row...\n")
	if err := appendMasterlistRow(ctx, opts, runID); err != nil {
		return fmt.Errorf("appending masterlist row failed: %w", err)
	}

	if rec.UpdateSTSheet {
		fmt.Printf("Step 6/8: Updating ST spreadsheet...\n")
		if err := updateSTSheet(ctx, opts); err != nil {
			return fmt.Errorf("updating ST spreadsheet failed: %w", err)
		}
	} else {
		fmt.Printf("Step 6/8: Skipping ST spreadsheet update.\n")
	}

	if rec.UpdatePlayerSheet {
		fmt.Printf("Step 7/8: Updating player spreadsheet...\n")
		if err := updatePlayerSheet(ctx, opts); err != nil {
			return fmt.Errorf("updating player spreadsheet failed: %w", err)
		}
	} else {
		fmt.Printf("Step 7/8: Skipping player spreadsheet update.\n")
	}

	fmt.Printf("Step 8/8: Writing profile...\n")
	if err := writeProfile(ctx, opts, runID); err != nil {
		return fmt.Errorf("writing profile failed: %w", err)
	}

	if opts.Database != nil && runID != uuid.Nil {
		_ = opts.Database.CompleteRun(ctx, runID, "completed")
	}

	return nil
}

// gatherInformation resolves the masterlist from configuration, derives the
// source document URL, and extracts the character name from the document
// title.
func gatherInformation(ctx context.Context, opts Options) error {
	rec := opts.Record

	masterlistID, err := opts.Config.MasterlistID(rec.Game)
	if err != nil {
		return err
	}
	rec.MasterlistID = masterlistID
	rec.MasterlistURL = sheets.BuildURL("spreadsheets", masterlistID, "")
	rec.SheetURL = sheets.BuildURL("document", rec.SheetID, "")

	doc, err := opts.Gateway.GetDocument(ctx, rec.SheetID)
	if err != nil {
		return err
	}
	rec.Name = sheets.CharacterNameFromTitle(doc.Title)

	if opts.Verbose {
		fmt.Printf("New character is named: %s\n", rec.Name)
		fmt.Printf("Character masterlist: %s\n", rec.MasterlistURL)
		fmt.Printf("Character sheet: %s\n", rec.SheetURL)
		if wikiURL, err := sheets.WikiURL(opts.Config, rec.Game, rec.Name); err == nil {
			fmt.Printf("Expected wiki page: %s\n", wikiURL)
		}
	}

	return nil
}

// resolveTemplates reads the template share links from the masterlist,
// decodes them into IDs, and stamps the template display names with the
// character name.
func resolveTemplates(ctx context.Context, opts Options) (*resolvedTemplates, error) {
	rec := opts.Record

	grid, err := opts.Gateway.GetRange(ctx, rec.MasterlistID, templateRange)
	if err != nil {
		return nil, err
	}
	if len(grid) < 3 || len(grid[0]) == 0 || len(grid[1]) == 0 || len(grid[2]) == 0 {
		return nil, fmt.Errorf("template range %s of masterlist %s is incomplete", templateRange, rec.MasterlistID)
	}

	tmpl := &resolvedTemplates{
		stID:     sheets.ExtractIDFromShareLink(grid[0][0]),
		playerID: sheets.ExtractIDFromShareLink(grid[1][0]),
		folderID: sheets.ExtractIDFromShareLink(grid[2][0]),
	}

	stTemplate, err := opts.Gateway.GetFile(ctx, tmpl.stID)
	if err != nil {
		return nil, err
	}
	playerTemplate, err := opts.Gateway.GetFile(ctx, tmpl.playerID)
	if err != nil {
		return nil, err
	}

	tmpl.stName = strings.ReplaceAll(stTemplate.Name, templatePlaceholder, rec.Name)
	tmpl.playerName = strings.ReplaceAll(playerTemplate.Name, templatePlaceholder, rec.Name)

	if opts.Verbose {
		opts.Printer.PrintTemplates(tmpl.stID, tmpl.stName, tmpl.playerID, tmpl.playerName, tmpl.folderID)
	}

	return tmpl, nil
}

// createSpreadsheets copies the templates into the character folder, or
// reuses pre-supplied sheet IDs. Either way both sheet URLs end up derived
// from their IDs.
func createSpreadsheets(ctx context.Context, opts Options, tmpl *resolvedTemplates) error {
	rec := opts.Record

	for _, kind := range []types.SheetKind{types.SheetST, types.SheetPlayer} {
		id, _ := rec.Sheet(kind)
		templateID, name := tmpl.forKind(kind)

		switch {
		case id != "":
			fmt.Printf("Using existing %s spreadsheet with ID = %s\n", kind.Label(), id)
		case rec.DryRun:
			fmt.Printf("Dry Run: creating new %s spreadsheet\n", kind.Label())
			id = fmt.Sprintf("DryRun%sID", kind)
			if opts.Verbose {
				fmt.Printf("Template: %s, Parent: %s, Name: %s\n", templateID, tmpl.folderID, name)
			}
		default:
			fmt.Printf("Creating new %s spreadsheet\n", kind.Label())
			copyID, err := opts.Gateway.CopyFile(ctx, templateID, tmpl.folderID, name)
			if err != nil {
				return err
			}
			id = copyID
			if opts.Verbose {
				fmt.Printf("New %s spreadsheet has ID = %s\n", kind.Label(), id)
			}
		}

		rec.SetSheet(kind, id, sheets.BuildURL("spreadsheets", id, ""))
	}

	return nil
}

// updatePermissions grants the player edit access to their sheet and opens
// the player sheet, ST sheet and source document for public reading.
func updatePermissions(ctx context.Context, opts Options) error {
	rec := opts.Record

	if opts.Verbose {
		fmt.Printf("Granting editor permission on the player spreadsheet to %s\n", rec.Email)
	}
	if !rec.DryRun {
		if err := opts.Gateway.GrantEditorAccess(ctx, rec.Email, rec.PlayerSheetID); err != nil {
			return err
		}
	}

	if opts.Verbose {
		fmt.Printf("Granting public read permission on the player spreadsheet, ST spreadsheet and character sheet\n")
	}
	if !rec.DryRun {
		for _, id := range []string{rec.PlayerSheetID, rec.STSheetID, rec.SheetID} {
			if err := opts.Gateway.GrantPublicReadAccess(ctx, id); err != nil {
				return err
			}
		}
	}

	return nil
}

// appendMasterlistRow builds the game-specific character row and appends it
// after the last populated row of the masterlist table.
func appendMasterlistRow(ctx context.Context, opts Options, runID uuid.UUID) error {
	rec := opts.Record

	listRange, row, err := sheets.CharacterRow(opts.Config, rec.Game, rec.STSheetID)
	if err != nil {
		return err
	}

	if opts.Verbose {
		fmt.Printf("Adding new character row to range %s of the masterlist\n", listRange)
	}
	if !rec.DryRun {
		if err := opts.Gateway.AppendRow(ctx, rec.MasterlistID, listRange, row); err != nil {
			return err
		}
	}

	if opts.Database != nil && runID != uuid.Nil {
		_ = opts.Database.SaveArtifact(ctx, runID, db.StepMasterlistRow, db.CategoryMutation, map[string]any{
			"range": listRange,
			"row":   row,
		})
	}

	return nil
}

// updateSTSheet stamps the character block onto the ST sheet, copies the
// floor XP over from the masterlist, and, for scion, writes the callings.
// The floor XP read runs even in dry-run mode.
func updateSTSheet(ctx context.Context, opts Options) error {
	rec := opts.Record

	data := []gateway.RangeData{{
		Range: characterRange,
		Values: [][]string{
			{rec.Name},
			{rec.SheetURL},
			{rec.FormattedSanctionDate()},
			{rec.Storyteller},
			{rec.PlayerSheetURL},
			{rec.STSheetURL},
		},
	}}

	grid, err := opts.Gateway.GetRange(ctx, rec.MasterlistID, floorXPSource)
	if err != nil {
		return err
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return fmt.Errorf("floor XP missing from range %s of masterlist %s", floorXPSource, rec.MasterlistID)
	}
	data = append(data, gateway.RangeData{
		Range:  floorXPTarget,
		Values: [][]string{{grid[0][0]}},
	})

	if rec.Game == "scion" {
		data = append(data, gateway.RangeData{
			Range:  callingsRange,
			Values: rec.WrappedCallings(),
		})
	}

	if opts.Verbose {
		fmt.Printf("Updating ST spreadsheet with character information and floor XP\n")
	}
	if !rec.DryRun {
		if err := opts.Gateway.BatchUpdate(ctx, rec.STSheetID, data); err != nil {
			return err
		}
	}

	return nil
}

// updatePlayerSheet links the player sheet to the ST sheet through a live
// cross-sheet range import.
func updatePlayerSheet(ctx context.Context, opts Options) error {
	rec := opts.Record

	formula := fmt.Sprintf(`=IMPORTRANGE("%s", "%s")`, rec.STSheetURL, stImportRange)

	if opts.Verbose {
		fmt.Printf("Updating player spreadsheet with a link to the ST spreadsheet\n")
	}
	if !rec.DryRun {
		if err := opts.Gateway.UpdateRange(ctx, rec.PlayerSheetID, playerLinkTarget, [][]string{{formula}}); err != nil {
			return err
		}
	}

	return nil
}

// writeProfile emits the summary artifact. Dry-run prints both the profile
// and the full record dump; live mode writes the profile into the output
// directory.
func writeProfile(ctx context.Context, opts Options, runID uuid.UUID) error {
	rec := opts.Record
	profile := Profile(rec)

	if rec.DryRun {
		fmt.Println(profile)
		opts.Printer.PrintRecord(rec)
		return nil
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(opts.OutputDir, opts.ProfileFilename)
	if opts.Verbose {
		fmt.Printf("Writing profile to %s\n", path)
	}
	if err := os.WriteFile(path, []byte(profile+"\n"), 0644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	if opts.Database != nil && runID != uuid.Nil {
		_ = opts.Database.SaveTextArtifact(ctx, runID, db.StepProfile, db.CategorySummary, profile)
	}

	return nil
}
