package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mythic-saga/sheet-builder/internal/config"
	"github.com/mythic-saga/sheet-builder/internal/pipeline"
	"github.com/mythic-saga/sheet-builder/internal/types"
	"github.com/mythic-saga/sheet-builder/internal/validation"
)

var characterCommand = &cobra.Command{
	Use:   "character <game>",
	Short: "Provision a single character via the CLI, which has the most adaptability",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacterCmd,
}

var (
	characterSheetID       string
	characterStoryteller   string
	characterDate          string
	characterEmail         string
	characterCallings      []string
	characterPlayerSheetID string
	characterSTSheetID     string
	characterSkipPlayer    bool
	characterSkipST        bool
)

func init() {
	characterCommand.Flags().StringVarP(&characterSheetID, "sheet-id", "s", "", "Google Doc ID of the character sheet")
	characterCommand.Flags().StringVar(&characterStoryteller, "storyteller", "", "Sanctioning ST")
	characterCommand.Flags().StringVarP(&characterDate, "date", "d", "", "Sanction date for characters sanctioned before creating the sheets. Formats: 1/31/23, 01/31/23, 1/31/2023, 01/31/2023, or 2023-01-31")
	characterCommand.Flags().StringVarP(&characterEmail, "email", "e", "", "Player's Gmail (for permissions)")
	characterCommand.Flags().StringSliceVarP(&characterCallings, "callings", "c", nil, "Three callings, comma separated. Required in case of Scion")
	characterCommand.Flags().StringVar(&characterPlayerSheetID, "player-sheet-id", "", "ID of an already created Player spreadsheet")
	characterCommand.Flags().StringVar(&characterSTSheetID, "st-sheet-id", "", "ID of an already created ST spreadsheet")
	characterCommand.Flags().BoolVar(&characterSkipPlayer, "skip-player-update", false, "Do not update the player spreadsheet")
	characterCommand.Flags().BoolVar(&characterSkipST, "skip-st-update", false, "Do not update the ST spreadsheet")

	rootCmd.AddCommand(characterCommand)
}

func runCharacterCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	game := args[0]
	if !cfg.Active(game) {
		return fmt.Errorf("game %q is not active (active games: %s)", game, strings.Join(cfg.Games, ", "))
	}

	rec := types.NewCharacterRecord()
	rec.Game = config.NormalizeGame(game)
	rec.SheetID = characterSheetID
	rec.Storyteller = characterStoryteller
	rec.GivenSanctionDate = characterDate
	rec.Email = characterEmail
	rec.Callings = characterCallings
	rec.PlayerSheetID = characterPlayerSheetID
	rec.STSheetID = characterSTSheetID
	rec.UpdatePlayerSheet = !characterSkipPlayer
	rec.UpdateSTSheet = !characterSkipST
	rec.OverrideValidation = flagOverride
	rec.DryRun = flagDryRun

	if errs := validation.ValidateRecord(rec); len(errs) > 0 {
		return fmt.Errorf("validation failed:\n%s", strings.Join(errs, "\n"))
	}

	gw, err := newGateway(ctx, cfg)
	if err != nil {
		return err
	}

	database := openDatabase(ctx, cfg)
	if database != nil {
		defer database.Close()
	}

	return pipeline.Provision(ctx, pipeline.Options{
		Record:    rec,
		Config:    cfg,
		Gateway:   gw,
		Database:  database,
		OutputDir: cfg.OutputDir,
		Verbose:   flagVerbose,
	})
}
