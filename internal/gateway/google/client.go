// Package google implements the backend gateway over the Google Drive,
// Sheets and Docs APIs.
package google

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/mythic-saga/sheet-builder/internal/gateway"
)

// valueInputOption makes the backend parse written values the way a user
// typing them would, so IMPORTRANGE formulas become live references.
const valueInputOption = "USER_ENTERED"

// Client implements gateway.Gateway against the real Google APIs.
type Client struct {
	drive  *drive.Service
	sheets *sheets.Service
	docs   *docs.Service
}

var _ gateway.Gateway = (*Client)(nil)

// New builds a Client from the OAuth client secrets and cached token at the
// given paths.
func New(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	ts, err := NewTokenSource(ctx, credentialsPath, tokenPath)
	if err != nil {
		return nil, fmt.Errorf("authorize: %w", err)
	}
	return NewWithTokenSource(ctx, ts)
}

// NewWithTokenSource builds a Client from an existing token source.
func NewWithTokenSource(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	driveSvc, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	sheetsSvc, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	docsSvc, err := docs.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("create docs service: %w", err)
	}

	return &Client{drive: driveSvc, sheets: sheetsSvc, docs: docsSvc}, nil
}

// GetDocument fetches a document's metadata.
func (c *Client) GetDocument(ctx context.Context, documentID string) (*gateway.Document, error) {
	doc, err := c.docs.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, wrapError(err))
	}
	return &gateway.Document{Title: doc.Title}, nil
}

// GetFile fetches file metadata, optionally restricted to the named fields.
func (c *Client) GetFile(ctx context.Context, fileID string, fields ...string) (*gateway.File, error) {
	call := c.drive.Files.Get(fileID).Context(ctx)
	if len(fields) > 0 {
		call = call.Fields(googleapi.Field(strings.Join(fields, ",")))
	}

	f, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, wrapError(err))
	}
	return &gateway.File{ID: f.Id, Name: f.Name, MIMEType: f.MimeType, Parents: f.Parents}, nil
}

// CopyFile duplicates a file into the destination folder under a new name.
func (c *Client) CopyFile(ctx context.Context, fileID, destFolderID, name string) (string, error) {
	copied, err := c.drive.Files.Copy(fileID, &drive.File{
		Name:    name,
		Parents: []string{destFolderID},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("copy file %s: %w", fileID, wrapError(err))
	}
	return copied.Id, nil
}

// GrantEditorAccess gives the email write access to the file.
func (c *Client) GrantEditorAccess(ctx context.Context, email, fileID string) error {
	_, err := c.drive.Permissions.Create(fileID, &drive.Permission{
		Type:         "group",
		Role:         "writer",
		EmailAddress: email,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("grant editor access on %s: %w", fileID, wrapError(err))
	}
	return nil
}

// GrantPublicReadAccess gives anyone read access to the file.
func (c *Client) GrantPublicReadAccess(ctx context.Context, fileID string) error {
	_, err := c.drive.Permissions.Create(fileID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("grant public read access on %s: %w", fileID, wrapError(err))
	}
	return nil
}

// GetRange reads a cell range as a 2-D string grid.
func (c *Client) GetRange(ctx context.Context, spreadsheetID, rangeA1 string) ([][]string, error) {
	resp, err := c.sheets.Spreadsheets.Values.Get(spreadsheetID, rangeA1).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s of %s: %w", rangeA1, spreadsheetID, wrapError(err))
	}
	return gridToStrings(resp.Values), nil
}

// AppendRow appends one row after the last populated row of the table range.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, tableRange string, row []string) error {
	body := &sheets.ValueRange{Values: rowsToGrid([][]string{row})}
	_, err := c.sheets.Spreadsheets.Values.Append(spreadsheetID, tableRange, body).
		ValueInputOption(valueInputOption).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append row to %s of %s: %w", tableRange, spreadsheetID, wrapError(err))
	}
	return nil
}

// UpdateRange writes values into a cell range.
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, rangeA1 string, values [][]string) error {
	body := &sheets.ValueRange{Values: rowsToGrid(values)}
	_, err := c.sheets.Spreadsheets.Values.Update(spreadsheetID, rangeA1, body).
		ValueInputOption(valueInputOption).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update range %s of %s: %w", rangeA1, spreadsheetID, wrapError(err))
	}
	return nil
}

// BatchUpdate writes several ranges in one call.
func (c *Client) BatchUpdate(ctx context.Context, spreadsheetID string, data []gateway.RangeData) error {
	body := &sheets.BatchUpdateValuesRequest{ValueInputOption: valueInputOption}
	for _, d := range data {
		body.Data = append(body.Data, &sheets.ValueRange{
			Range:  d.Range,
			Values: rowsToGrid(d.Values),
		})
	}

	_, err := c.sheets.Spreadsheets.Values.BatchUpdate(spreadsheetID, body).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("batch update %s: %w", spreadsheetID, wrapError(err))
	}
	return nil
}

// ListFolder lists the non-trashed children of a folder.
func (c *Client) ListFolder(ctx context.Context, folderID string) ([]gateway.File, error) {
	query := fmt.Sprintf("'%s' in parents and trashed != true", folderID)

	var files []gateway.File
	pageToken := ""
	for {
		call := c.drive.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name, mimeType)").
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list folder %s: %w", folderID, wrapError(err))
		}

		for _, f := range resp.Files {
			files = append(files, gateway.File{ID: f.Id, Name: f.Name, MIMEType: f.MimeType})
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			return files, nil
		}
	}
}

func gridToStrings(values [][]any) [][]string {
	grid := make([][]string, 0, len(values))
	for _, row := range values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprint(cell))
		}
		grid = append(grid, cells)
	}
	return grid
}

func rowsToGrid(values [][]string) [][]any {
	grid := make([][]any, 0, len(values))
	for _, row := range values {
		cells := make([]any, 0, len(row))
		for _, cell := range row {
			cells = append(cells, cell)
		}
		grid = append(grid, cells)
	}
	return grid
}
