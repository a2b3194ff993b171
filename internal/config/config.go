// Package config materializes the process environment into one explicit
// configuration object, constructed at startup and passed by reference into
// every component that needs per-game settings. Core logic never reads the
// environment directly.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrGameNotConfigured is returned when a per-game lookup (masterlist ID,
// row layout, wiki prefix) has no configuration for the requested game.
// This is operator misconfiguration, distinct from user-input validation.
var ErrGameNotConfigured = errors.New("game is not configured")

// Config holds every environment-sourced setting.
type Config struct {
	// Version is the tool version reported by --version.
	Version string

	// Games is the active-games set, normalized to trimmed lowercase.
	Games []string `validate:"required,min=1"`

	// MasterlistIDs maps game -> masterlist spreadsheet ID
	// (from <GAME>_LIST_ID).
	MasterlistIDs map[string]string

	// WikiPrefixes maps game -> wiki namespace prefix
	// (from <GAME>_WIKI_PREFIX).
	WikiPrefixes map[string]string
	WikiBaseURL  string `validate:"omitempty,url"`

	// OutputDir is where the profile artifact is written in live mode.
	OutputDir string `validate:"required"`

	// Google OAuth client secrets and cached token.
	CredentialsPath string `validate:"required"`
	TokenPath       string `validate:"required"`

	// DatabaseURL enables optional run/artifact persistence when set.
	DatabaseURL string
}

// Load builds a Config from the environment. Call after godotenv has loaded
// any .env file.
func Load() *Config {
	cfg := &Config{
		Version:         os.Getenv("VERSION"),
		Games:           splitGames(os.Getenv("GAMES")),
		MasterlistIDs:   map[string]string{},
		WikiPrefixes:    map[string]string{},
		WikiBaseURL:     os.Getenv("WIKI_URL"),
		OutputDir:       envOr("OUTPUT_DIR", "output"),
		CredentialsPath: envOr("GOOGLE_CREDENTIALS", "credentials.json"),
		TokenPath:       envOr("GOOGLE_TOKEN", "token.json"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
	}

	for _, game := range cfg.Games {
		upper := strings.ToUpper(game)
		if id := os.Getenv(upper + "_LIST_ID"); id != "" {
			cfg.MasterlistIDs[game] = id
		}
		if prefix := os.Getenv(upper + "_WIKI_PREFIX"); prefix != "" {
			cfg.WikiPrefixes[game] = prefix
		}
	}

	return cfg
}

// Validate checks the configuration using struct tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Active reports whether the game is in the active-games set. Input is
// normalized the same way the set is.
func (c *Config) Active(game string) bool {
	game = NormalizeGame(game)
	for _, g := range c.Games {
		if g == game {
			return true
		}
	}
	return false
}

// MasterlistID resolves the masterlist spreadsheet ID for a game.
func (c *Config) MasterlistID(game string) (string, error) {
	id, ok := c.MasterlistIDs[NormalizeGame(game)]
	if !ok {
		return "", fmt.Errorf("no masterlist for game %q: %w", game, ErrGameNotConfigured)
	}
	return id, nil
}

// WikiPrefix resolves the wiki namespace prefix for a game.
func (c *Config) WikiPrefix(game string) (string, error) {
	prefix, ok := c.WikiPrefixes[NormalizeGame(game)]
	if !ok {
		return "", fmt.Errorf("no wiki prefix for game %q: %w", game, ErrGameNotConfigured)
	}
	return prefix, nil
}

// NormalizeGame lowercases and trims a game name so "Scion " and "scion"
// address the same configuration.
func NormalizeGame(game string) string {
	return strings.ToLower(strings.TrimSpace(game))
}

func splitGames(raw string) []string {
	var games []string
	for _, g := range strings.Split(raw, ",") {
		if g = NormalizeGame(g); g != "" {
			games = append(games, g)
		}
	}
	return games
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
