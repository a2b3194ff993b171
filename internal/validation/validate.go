// Package validation provides the pre-flight checks a character record must
// pass before any backend mutation happens.
package validation

import (
	"fmt"

	"github.com/mythic-saga/sheet-builder/internal/types"
)

// ValidateRecord runs every rule against the record and returns all failure
// messages at once; callers report the full list rather than one problem at
// a time. When the record carries the override flag, every check is skipped
// and nil is returned. That bypass is a deliberate operator escape hatch.
//
// Date validation is two-phase: the raw override string is parsed here, and
// on success the parsed date is assigned to the record so later steps always
// see a resolved calendar date.
func ValidateRecord(rec *types.CharacterRecord) []string {
	if rec.OverrideValidation {
		return nil
	}

	var errs []string

	if !StorytellerIsValid(rec) {
		errs = append(errs, "A sanctioning storyteller is required.")
	}

	if !EmailIsValid(rec) {
		errs = append(errs, fmt.Sprintf("The value used for player's e-mail (%s) is not a valid e-mail (probably).", rec.Email))
	}

	if !CallingsDefined(rec) {
		errs = append(errs, "You need to add three Callings when creating a Scion.")
	}

	if rec.GivenSanctionDate != "" {
		if date, ok := ParseDate(rec.GivenSanctionDate); ok {
			rec.SanctionDate = date
		} else {
			errs = append(errs, fmt.Sprintf("Invalid date format: %s. The usable formats are: 1/31/23, 01/31/23, 1/31/2023, 01/31/2023, or 2023-01-31.", rec.GivenSanctionDate))
		}
	}

	return errs
}
