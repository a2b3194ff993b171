package sheets

import (
	"fmt"
	"net/url"

	"github.com/mythic-saga/sheet-builder/internal/config"
)

// importRangePrefix builds a live cross-sheet reference into the Overview
// tab of the sheet linked on the same masterlist row (column F).
const importRangePrefix = `=IMPORTRANGE(INDIRECT(CONCAT("F", ROW())), "Overview!`

// rowCells is the masterlist column layout shared by every game. The "url"
// marker becomes the ST sheet URL; every other entry becomes an IMPORTRANGE
// formula pointing at that Overview cell.
var rowCells = []string{"B1", "B3", "E2", "E3", "B2", "url", "B5", "C1", "B7"}

// CharacterRow builds the masterlist row for a character and the table range
// it is appended to. Scion rows carry three extra calling columns and a
// wider range. An inactive or layout-less game is a configuration error.
func CharacterRow(cfg *config.Config, game, stSheetID string) (listRange string, row []string, err error) {
	game = config.NormalizeGame(game)
	if !cfg.Active(game) {
		return "", nil, fmt.Errorf("game %q is not active: %w", game, config.ErrGameNotConfigured)
	}

	for _, cell := range rowCells {
		if cell == "url" {
			row = append(row, BuildURL("spreadsheets", stSheetID, ""))
		} else {
			row = append(row, importRangePrefix+cell+`")`)
		}
	}

	var rangeEnd string
	switch game {
	case "scion":
		rangeEnd = "M"
		for _, i := range []int{2, 3, 4} {
			row = append(row, fmt.Sprintf(`%sQ%d")`, importRangePrefix, i))
		}
	case "exalted", "modern":
		rangeEnd = "I"
	default:
		return "", nil, fmt.Errorf("no list range associated with game %q: %w", game, config.ErrGameNotConfigured)
	}

	return "Character list!A2:" + rangeEnd, row, nil
}

// WikiURL builds the wiki page link for a character from the game's
// configured namespace prefix and the shared base URL.
func WikiURL(cfg *config.Config, game, characterName string) (string, error) {
	prefix, err := cfg.WikiPrefix(game)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s:%s", cfg.WikiBaseURL, prefix, url.PathEscape(characterName)), nil
}
