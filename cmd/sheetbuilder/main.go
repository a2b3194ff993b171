// Package main provides the entry point for the Mythic Saga sheet builder,
// the CLI that provisions character spreadsheets after sanctioning.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mythic-saga/sheet-builder/internal/config"
	"github.com/mythic-saga/sheet-builder/internal/db"
	"github.com/mythic-saga/sheet-builder/internal/gateway/google"
)

var rootCmd = &cobra.Command{
	Use:   "sheetbuilder",
	Short: "Creates spreadsheets and masterlist rows after sanctioning of a character in Mythic Saga",
	Long:  "sheetbuilder duplicates the per-game template spreadsheets for a newly sanctioned character, stamps them with character data, registers the character on the game masterlist, sets sharing permissions and emits a profile summary.",
}

var (
	flagOverride bool
	flagDryRun   bool
	flagVerbose  bool
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagOverride, "override", "o", false, "Skip the extra validation checks such as Callings and valid e-mail")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Print the resolved values without changing anything")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show extra information while running")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()
	rootCmd.Version = os.Getenv("VERSION")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig builds and validates the configuration object shared by all
// subcommands.
func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newGateway builds the Google-backed gateway. Dry-run still needs it: the
// workflow keeps executing every read.
func newGateway(ctx context.Context, cfg *config.Config) (*google.Client, error) {
	gw, err := google.New(ctx, cfg.CredentialsPath, cfg.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Google APIs: %w", err)
	}
	return gw, nil
}

// openDatabase connects the optional artifact store. A connection failure
// is a warning, never a reason to abort provisioning.
func openDatabase(ctx context.Context, cfg *config.Config) *db.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		fmt.Printf("Warning: Failed to connect to database: %v\n", err)
		fmt.Printf("Continuing without database persistence...\n")
		return nil
	}

	if flagVerbose {
		fmt.Printf("Connected to database\n")
	}
	return database
}
