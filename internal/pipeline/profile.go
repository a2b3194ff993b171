package pipeline

import (
	"fmt"
	"strings"

	"github.com/mythic-saga/sheet-builder/internal/types"
)

// Profile renders the summary artifact: a QUICK LINKS block with the
// sanction date, the three sheet links and the player email. Scion
// characters get an extra legend block with literal placeholder tokens
// (<pantheon>, @<user>, <title>) meant for manual completion on the
// community server.
func Profile(rec *types.CharacterRecord) string {
	lines := []string{
		"## QUICK LINKS",
		fmt.Sprintf("* Sanctioned: %s", rec.FormattedSanctionDate()),
		fmt.Sprintf("* Character sheet: %s", rec.SheetURL),
		fmt.Sprintf("* Request sheet: %s", rec.PlayerSheetURL),
		fmt.Sprintf("* ST spreadsheet (view-only): %s", rec.STSheetURL),
		fmt.Sprintf("* Connecting e-mail: %s", rec.Email),
	}

	if rec.Game == "scion" {
		lines = append(lines,
			fmt.Sprintf("* Legend 1 (%s)", rec.FormattedSanctionDate()),
			"### Deeds",
			"",
			fmt.Sprintf("## %s of the <pantheon>", rec.Name),
			"Played by @<user>",
			"",
			"### Titles",
			"- <title>",
			"",
			"### Deeds",
		)
	}

	return strings.Join(lines, "\n")
}
