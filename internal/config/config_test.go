package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GAMES", "Scion, Exalted ,MODERN")
	t.Setenv("SCION_LIST_ID", "scion-list-id")
	t.Setenv("SCION_WIKI_PREFIX", "SR")
	t.Setenv("WIKI_URL", "https://wiki.example.org")
	t.Setenv("OUTPUT_DIR", "")
	t.Setenv("GOOGLE_CREDENTIALS", "")
	t.Setenv("GOOGLE_TOKEN", "")

	cfg := Load()

	assert.Equal(t, []string{"scion", "exalted", "modern"}, cfg.Games)
	assert.Equal(t, "scion-list-id", cfg.MasterlistIDs["scion"])
	assert.Equal(t, "SR", cfg.WikiPrefixes["scion"])
	assert.Equal(t, "https://wiki.example.org", cfg.WikiBaseURL)

	// Defaults kick in for unset paths.
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "credentials.json", cfg.CredentialsPath)
	assert.Equal(t, "token.json", cfg.TokenPath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{
			name: "complete",
			cfg: Config{
				Games:           []string{"scion"},
				OutputDir:       "output",
				CredentialsPath: "credentials.json",
				TokenPath:       "token.json",
			},
			valid: true,
		},
		{
			name: "no games",
			cfg: Config{
				OutputDir:       "output",
				CredentialsPath: "credentials.json",
				TokenPath:       "token.json",
			},
			valid: false,
		},
		{
			name: "bad wiki url",
			cfg: Config{
				Games:           []string{"scion"},
				OutputDir:       "output",
				CredentialsPath: "credentials.json",
				TokenPath:       "token.json",
				WikiBaseURL:     "not a url",
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestActive(t *testing.T) {
	cfg := &Config{Games: []string{"scion", "exalted"}}

	assert.True(t, cfg.Active("scion"))
	assert.True(t, cfg.Active("Scion"))
	assert.True(t, cfg.Active("  EXALTED "))
	assert.False(t, cfg.Active("modern"))
	assert.False(t, cfg.Active(""))
}

func TestMasterlistID(t *testing.T) {
	cfg := &Config{
		Games:         []string{"scion"},
		MasterlistIDs: map[string]string{"scion": "list-id"},
	}

	id, err := cfg.MasterlistID("Scion")
	require.NoError(t, err)
	assert.Equal(t, "list-id", id)

	_, err = cfg.MasterlistID("exalted")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGameNotConfigured))
}

func TestWikiPrefix(t *testing.T) {
	cfg := &Config{
		Games:        []string{"scion"},
		WikiPrefixes: map[string]string{"scion": "SR"},
	}

	prefix, err := cfg.WikiPrefix("scion")
	require.NoError(t, err)
	assert.Equal(t, "SR", prefix)

	_, err = cfg.WikiPrefix("modern")
	assert.True(t, errors.Is(err, ErrGameNotConfigured))
}

func TestNormalizeGame(t *testing.T) {
	assert.Equal(t, "scion", NormalizeGame("  Scion "))
	assert.Equal(t, "", NormalizeGame("   "))
}
