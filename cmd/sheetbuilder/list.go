package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mythic-saga/sheet-builder/internal/sheets"
)

var listCommand = &cobra.Command{
	Use:   "list <folder>",
	Short: "List the files in a Drive folder with their canonical URLs",
	Long:  "Accepts either a raw folder ID or a share link and prints one line\nper file: name, type and a URL that opens it directly.",
	Args:  cobra.ExactArgs(1),
	RunE:  runListCmd,
}

func init() {
	rootCmd.AddCommand(listCommand)
}

func runListCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gw, err := newGateway(ctx, cfg)
	if err != nil {
		return err
	}

	folderID := sheets.ExtractIDFromShareLink(args[0])
	files, err := gw.ListFolder(ctx, folderID)
	if err != nil {
		return fmt.Errorf("failed to list folder %s: %w", folderID, err)
	}

	if len(files) == 0 {
		fmt.Printf("Folder %s is empty.\n", folderID)
		return nil
	}

	for _, f := range files {
		fileType := sheets.TypeFromMIME(f.MIMEType)
		fmt.Printf("%-12s %-40s %s\n", fileType, f.Name, sheets.BuildURL(fileType, f.ID, ""))
	}
	return nil
}
