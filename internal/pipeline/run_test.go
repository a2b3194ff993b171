package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mythic-saga/sheet-builder/internal/config"
	"github.com/mythic-saga/sheet-builder/internal/gateway"
	"github.com/mythic-saga/sheet-builder/internal/observability"
	"github.com/mythic-saga/sheet-builder/internal/types"
)

// fakeGateway records every call and serves canned data. Mutating calls are
// counted so dry-run tests can assert none happened.
type fakeGateway struct {
	docTitle  string
	fileNames map[string]string
	ranges    map[string][][]string

	copyCalls        int
	copiedNames      []string
	permissionCalls  int
	appendCalls      int
	appendedRanges   []string
	appendedRows     [][]string
	updateCalls      int
	updatedFormulas  []string
	batchUpdateCalls int
	batchUpdates     map[string][]gateway.RangeData
	rangeReads       []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		docTitle: "Jo Hepburn / Scion of Thor",
		fileNames: map[string]string{
			"st-template-id":     "ST sheet for <Template>",
			"player-template-id": "Player sheet for <Template>",
		},
		ranges: map[string][][]string{
			"Overview!W5:W7": {
				{"https://drive.google.com/open?id=st-template-id"},
				{"https://drive.google.com/open?id=player-template-id"},
				{"https://drive.google.com/drive/folders/folder-id?usp=drive_link"},
			},
			"'XP log'!J2": {{"55"}},
		},
		batchUpdates: map[string][]gateway.RangeData{},
	}
}

func (f *fakeGateway) GetDocument(_ context.Context, _ string) (*gateway.Document, error) {
	return &gateway.Document{Title: f.docTitle}, nil
}

func (f *fakeGateway) GetFile(_ context.Context, fileID string, _ ...string) (*gateway.File, error) {
	name, ok := f.fileNames[fileID]
	if !ok {
		return nil, fmt.Errorf("no such file %q", fileID)
	}
	return &gateway.File{ID: fileID, Name: name}, nil
}

func (f *fakeGateway) CopyFile(_ context.Context, fileID, _, name string) (string, error) {
	f.copyCalls++
	f.copiedNames = append(f.copiedNames, name)
	return "copy-of-" + fileID, nil
}

func (f *fakeGateway) GrantEditorAccess(_ context.Context, _, _ string) error {
	f.permissionCalls++
	return nil
}

func (f *fakeGateway) GrantPublicReadAccess(_ context.Context, _ string) error {
	f.permissionCalls++
	return nil
}

func (f *fakeGateway) GetRange(_ context.Context, _ string, rangeA1 string) ([][]string, error) {
	f.rangeReads = append(f.rangeReads, rangeA1)
	grid, ok := f.ranges[rangeA1]
	if !ok {
		return nil, fmt.Errorf("no data for range %q", rangeA1)
	}
	return grid, nil
}

func (f *fakeGateway) AppendRow(_ context.Context, _ string, tableRange string, row []string) error {
	f.appendCalls++
	f.appendedRanges = append(f.appendedRanges, tableRange)
	f.appendedRows = append(f.appendedRows, row)
	return nil
}

func (f *fakeGateway) UpdateRange(_ context.Context, _ string, _ string, values [][]string) error {
	f.updateCalls++
	if len(values) > 0 && len(values[0]) > 0 {
		f.updatedFormulas = append(f.updatedFormulas, values[0][0])
	}
	return nil
}

func (f *fakeGateway) BatchUpdate(_ context.Context, spreadsheetID string, data []gateway.RangeData) error {
	f.batchUpdateCalls++
	f.batchUpdates[spreadsheetID] = append(f.batchUpdates[spreadsheetID], data...)
	return nil
}

func (f *fakeGateway) ListFolder(_ context.Context, _ string) ([]gateway.File, error) {
	return nil, nil
}

func (f *fakeGateway) mutationCalls() int {
	return f.copyCalls + f.permissionCalls + f.appendCalls + f.updateCalls + f.batchUpdateCalls
}

var _ gateway.Gateway = (*fakeGateway)(nil)

func pipelineConfig() *config.Config {
	return &config.Config{
		Games:         []string{"scion", "exalted"},
		MasterlistIDs: map[string]string{"scion": "masterlist-id", "exalted": "masterlist-id"},
	}
}

func scionRecord() *types.CharacterRecord {
	rec := types.NewCharacterRecord()
	rec.Game = "scion"
	rec.SheetID = "char-doc-id"
	rec.Storyteller = "Some ST"
	rec.Email = "player@gmail.com"
	rec.Callings = []string{"Sage", "Liminal", "Warrior"}
	return rec
}

func pipelineOptions(t *testing.T, rec *types.CharacterRecord, gw *fakeGateway) Options {
	t.Helper()
	return Options{
		Record:    rec,
		Config:    pipelineConfig(),
		Gateway:   gw,
		Printer:   observability.NewPrinter(&bytes.Buffer{}),
		OutputDir: t.TempDir(),
	}
}

func TestProvisionLiveRun(t *testing.T) {
	gw := newFakeGateway()
	rec := scionRecord()
	opts := pipelineOptions(t, rec, gw)

	require.NoError(t, Provision(context.Background(), opts))

	// Name comes from the source document title.
	assert.Equal(t, "Jo Hepburn", rec.Name)
	assert.Equal(t, "https://docs.google.com/document/d/char-doc-id", rec.SheetURL)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/masterlist-id", rec.MasterlistURL)

	// Both templates are copied, with the placeholder stamped.
	assert.Equal(t, 2, gw.copyCalls)
	assert.Contains(t, gw.copiedNames, "ST sheet for Jo Hepburn")
	assert.Contains(t, gw.copiedNames, "Player sheet for Jo Hepburn")
	assert.Equal(t, "copy-of-st-template-id", rec.STSheetID)
	assert.Equal(t, "copy-of-player-template-id", rec.PlayerSheetID)

	// Editor access for the player plus public read on three files.
	assert.Equal(t, 4, gw.permissionCalls)

	// One masterlist row, scion shape.
	require.Equal(t, 1, gw.appendCalls)
	assert.Equal(t, "Character list!A2:M", gw.appendedRanges[0])
	assert.Len(t, gw.appendedRows[0], 12)

	// The ST sheet batch update carries the character block, the floor XP
	// and the callings.
	updates := gw.batchUpdates[rec.STSheetID]
	require.Len(t, updates, 3)
	assert.Equal(t, "Overview!B1:B6", updates[0].Range)
	assert.Equal(t, "Jo Hepburn", updates[0].Values[0][0])
	assert.Equal(t, "'XP log'!L2", updates[1].Range)
	assert.Equal(t, "55", updates[1].Values[0][0])
	assert.Equal(t, "Overview!Q2:Q4", updates[2].Range)

	// The player sheet gets the live link formula.
	require.Equal(t, 1, gw.updateCalls)
	assert.Equal(t, fmt.Sprintf(`=IMPORTRANGE("%s", "Overview!A1:P20")`, rec.STSheetURL), gw.updatedFormulas[0])

	// The profile lands in the output directory.
	data, err := os.ReadFile(filepath.Join(opts.OutputDir, DefaultProfileFilename))
	require.NoError(t, err)
	assert.Contains(t, string(data), "## QUICK LINKS")
}

func TestProvisionReusesSuppliedSheets(t *testing.T) {
	gw := newFakeGateway()
	rec := scionRecord()
	rec.STSheetID = "existing-st"
	rec.PlayerSheetID = "existing-player"

	require.NoError(t, Provision(context.Background(), pipelineOptions(t, rec, gw)))

	assert.Zero(t, gw.copyCalls, "pre-supplied sheet IDs must suppress template copies")
	assert.Equal(t, "existing-st", rec.STSheetID)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/existing-st", rec.STSheetURL)
	assert.Equal(t, "existing-player", rec.PlayerSheetID)
}

func TestProvisionDryRun(t *testing.T) {
	gw := newFakeGateway()
	rec := scionRecord()
	rec.DryRun = true
	opts := pipelineOptions(t, rec, gw)

	require.NoError(t, Provision(context.Background(), opts))

	assert.Zero(t, gw.mutationCalls(), "dry-run must not mutate anything")

	// Reads still happen, including the floor XP lookup.
	assert.Contains(t, gw.rangeReads, "Overview!W5:W7")
	assert.Contains(t, gw.rangeReads, "'XP log'!J2")

	// Placeholder IDs stand in for the copies.
	assert.Equal(t, "DryRunstID", rec.STSheetID)
	assert.Equal(t, "DryRunplayerID", rec.PlayerSheetID)

	// No profile file is written.
	_, err := os.Stat(filepath.Join(opts.OutputDir, DefaultProfileFilename))
	assert.True(t, os.IsNotExist(err))
}

func TestProvisionSkipsSheetUpdates(t *testing.T) {
	gw := newFakeGateway()
	rec := scionRecord()
	rec.UpdateSTSheet = false
	rec.UpdatePlayerSheet = false

	require.NoError(t, Provision(context.Background(), pipelineOptions(t, rec, gw)))

	assert.Zero(t, gw.batchUpdateCalls)
	assert.Zero(t, gw.updateCalls)
	assert.NotContains(t, gw.rangeReads, "'XP log'!J2")
	// Everything else still runs.
	assert.Equal(t, 1, gw.appendCalls)
	assert.Equal(t, 4, gw.permissionCalls)
}

func TestProvisionNonScionSkipsCallings(t *testing.T) {
	gw := newFakeGateway()
	rec := scionRecord()
	rec.Game = "exalted"
	rec.Callings = nil

	require.NoError(t, Provision(context.Background(), pipelineOptions(t, rec, gw)))

	assert.Equal(t, "Character list!A2:I", gw.appendedRanges[0])
	assert.Len(t, gw.appendedRows[0], 9)

	updates := gw.batchUpdates[rec.STSheetID]
	require.Len(t, updates, 2, "no callings range for a non-scion game")
	assert.Equal(t, "Overview!B1:B6", updates[0].Range)
	assert.Equal(t, "'XP log'!L2", updates[1].Range)
}

func TestProvisionUnknownGameFailsEarly(t *testing.T) {
	gw := newFakeGateway()
	rec := scionRecord()
	rec.Game = "vampire"

	err := Provision(context.Background(), pipelineOptions(t, rec, gw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gathering information failed")
	assert.Zero(t, gw.mutationCalls())
}

func TestProvisionIncompleteTemplateRange(t *testing.T) {
	gw := newFakeGateway()
	gw.ranges["Overview!W5:W7"] = [][]string{{"only-one"}}
	rec := scionRecord()

	err := Provision(context.Background(), pipelineOptions(t, rec, gw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolving templates failed")
	assert.Zero(t, gw.mutationCalls())
}
