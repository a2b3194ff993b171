// Package gateway defines the backend capability set the provisioning
// workflow depends on. The orchestrator only ever sees this interface; the
// real Google implementation lives in the google subpackage and tests
// substitute fakes.
package gateway

import "context"

// Document is the subset of a source document the workflow reads.
type Document struct {
	Title string
}

// File is the subset of file metadata the workflow reads.
type File struct {
	ID       string
	Name     string
	MIMEType string
	Parents  []string
}

// RangeData pairs an A1 range with a 2-D value grid, the unit of a batched
// spreadsheet update.
type RangeData struct {
	Range  string
	Values [][]string
}

// Gateway is the abstract backend used by the orchestrator. Every call that
// fails is fatal for the character being provisioned; there is no retry
// layer in this core.
type Gateway interface {
	// GetDocument fetches a source document's metadata.
	GetDocument(ctx context.Context, documentID string) (*Document, error)

	// GetFile fetches file metadata, optionally restricted to the named
	// fields.
	GetFile(ctx context.Context, fileID string, fields ...string) (*File, error)

	// CopyFile duplicates a template into the destination folder under a
	// new name and returns the copy's ID.
	CopyFile(ctx context.Context, fileID, destFolderID, name string) (string, error)

	// GrantEditorAccess gives the email write access to the file.
	GrantEditorAccess(ctx context.Context, email, fileID string) error

	// GrantPublicReadAccess gives anyone read access to the file.
	GrantPublicReadAccess(ctx context.Context, fileID string) error

	// GetRange reads a cell range as a 2-D value grid.
	GetRange(ctx context.Context, spreadsheetID, rangeA1 string) ([][]string, error)

	// AppendRow appends one row after the last populated row of a table
	// range.
	AppendRow(ctx context.Context, spreadsheetID, tableRange string, row []string) error

	// UpdateRange writes values into a cell range.
	UpdateRange(ctx context.Context, spreadsheetID, rangeA1 string, values [][]string) error

	// BatchUpdate writes several ranges in one call.
	BatchUpdate(ctx context.Context, spreadsheetID string, data []RangeData) error

	// ListFolder lists the non-trashed children of a folder.
	ListFolder(ctx context.Context, folderID string) ([]File, error)
}
