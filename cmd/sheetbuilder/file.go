package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mythic-saga/sheet-builder/internal/batch"
	"github.com/mythic-saga/sheet-builder/internal/pipeline"
)

var fileCommand = &cobra.Command{
	Use:   "file <path>",
	Short: "Provision every character listed in a semicolon separated file",
	Long:  "Reads rows of the form\n\n  game; sheet_id; email; sanction_date; storyteller; callings\n\nLines starting with # and blank lines are skipped. Rows may leave the date\nand storyteller empty to fall back to the command-line defaults.",
	Args:  cobra.ExactArgs(1),
	RunE:  runFileCmd,
}

var (
	fileStoryteller string
	fileDate        string
)

func init() {
	fileCommand.Flags().StringVar(&fileStoryteller, "storyteller", "", "Default sanctioning ST for rows that omit one")
	fileCommand.Flags().StringVarP(&fileDate, "date", "d", "", "Default sanction date for rows that omit one")

	rootCmd.AddCommand(fileCommand)
}

func runFileCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	records, reports, err := batch.BuildRecords(f, batch.Defaults{
		Storyteller:  fileStoryteller,
		SanctionDate: fileDate,
	}, flagOverride, flagDryRun)
	if err != nil {
		return fmt.Errorf("failed to read batch file: %w", err)
	}
	if len(reports) > 0 {
		return fmt.Errorf("batch rejected:\n%s", strings.Join(reports, "\n"))
	}
	if len(records) == 0 {
		return fmt.Errorf("batch file contains no character rows")
	}

	for _, rec := range records {
		if !cfg.Active(rec.Game) {
			return fmt.Errorf("game %q is not active (active games: %s)", rec.Game, strings.Join(cfg.Games, ", "))
		}
	}

	gw, err := newGateway(ctx, cfg)
	if err != nil {
		return err
	}

	database := openDatabase(ctx, cfg)
	if database != nil {
		defer database.Close()
	}

	fmt.Printf("Provisioning %d character(s)...\n", len(records))
	return batch.Run(ctx, records, pipeline.Options{
		Config:    cfg,
		Gateway:   gw,
		Database:  database,
		OutputDir: cfg.OutputDir,
		Verbose:   flagVerbose,
	})
}
