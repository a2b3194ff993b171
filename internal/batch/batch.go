// Package batch reads many character records from a semicolon-delimited
// input and provisions them one at a time.
//
// Validation is batch-wide: every row is checked before any orchestration
// starts, and one bad row rejects the whole batch with all messages shown
// together. Orchestration failures are a different story: a failure mid-run
// aborts the remaining rows. Whether that abort is intended behavior or an
// oversight is an open product question; the behavior is preserved here
// rather than silently patched with per-row recovery.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/mythic-saga/sheet-builder/internal/pipeline"
	"github.com/mythic-saga/sheet-builder/internal/sheets"
	"github.com/mythic-saga/sheet-builder/internal/types"
	"github.com/mythic-saga/sheet-builder/internal/validation"
)

// fieldCount is the fixed column count of an input row:
// game; sheet_id; email; sanction_date; storyteller; callings
const fieldCount = 6

// Defaults are the command-level fallbacks a row may omit.
type Defaults struct {
	Storyteller  string
	SanctionDate string
}

// BuildRecords parses every input row into a validated character record.
// Blank lines and #-comments are skipped. The returned reports carry one
// entry per validation failure, prefixed with the row number; a non-empty
// report list means the batch must be rejected without provisioning
// anything.
func BuildRecords(r io.Reader, defaults Defaults, override, dryRun bool) ([]*types.CharacterRecord, []string, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read input: %w", err)
	}

	var records []*types.CharacterRecord
	var reports []string

	for i, fields := range rows {
		rowNum := i + 1

		if len(fields) != fieldCount {
			reports = append(reports, fmt.Sprintf("row %d: expected %d fields, got %d", rowNum, fieldCount, len(fields)))
			continue
		}

		rec := recordFromRow(fields, defaults)
		rec.OverrideValidation = override
		rec.DryRun = dryRun

		for _, msg := range validation.ValidateRecord(rec) {
			reports = append(reports, fmt.Sprintf("row %d: %s", rowNum, msg))
		}

		records = append(records, rec)
	}

	if len(reports) > 0 {
		return nil, reports, nil
	}
	return records, nil, nil
}

// recordFromRow builds a record from one parsed row, applying the fallback
// priority: row value, then command-level default, then (for the date) the
// current time via the record's zero-config default.
func recordFromRow(fields []string, defaults Defaults) *types.CharacterRecord {
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	rec := types.NewCharacterRecord()
	rec.Game = strings.ToLower(fields[0])
	rec.SheetID = fields[1]
	rec.Email = fields[2]

	rec.GivenSanctionDate = fields[3]
	if rec.GivenSanctionDate == "" {
		rec.GivenSanctionDate = defaults.SanctionDate
	}

	rec.Storyteller = fields[4]
	if rec.Storyteller == "" {
		rec.Storyteller = defaults.Storyteller
	}

	rec.Callings = sheets.TrimAndSplit(fields[5])

	return rec
}

// Run provisions every record in row order, strictly sequentially; each
// run mutates the shared masterlist, so rows must never interleave. The
// first orchestration failure aborts the remainder of the batch.
func Run(ctx context.Context, records []*types.CharacterRecord, base pipeline.Options) error {
	for i, rec := range records {
		fmt.Printf("Provisioning character %d/%d (%s)...\n", i+1, len(records), rec.Game)

		opts := base
		opts.Record = rec
		if err := pipeline.Provision(ctx, opts); err != nil {
			return fmt.Errorf("character %d: %w", i+1, err)
		}
	}
	return nil
}
