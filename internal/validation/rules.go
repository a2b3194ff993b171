package validation

import (
	"regexp"
	"strings"

	"github.com/mythic-saga/sheet-builder/internal/types"
)

// emailPattern is a loose shape check, not full RFC validation: local part,
// an @, a domain, and a 2-7 letter TLD. Good enough to catch a missing @ or
// an obvious typo; known to accept some strings a mail server would reject.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,7}\b`)

// StorytellerIsValid reports whether the record names a sanctioning
// storyteller.
func StorytellerIsValid(rec *types.CharacterRecord) bool {
	return strings.TrimSpace(rec.Storyteller) != ""
}

// EmailIsValid reports whether the player email passes the shape check.
func EmailIsValid(rec *types.CharacterRecord) bool {
	return emailPattern.MatchString(rec.Email)
}

// CallingsDefined reports whether the callings requirement is met. Only
// scion characters need callings; three of them. For every other game the
// field is unconstrained.
func CallingsDefined(rec *types.CharacterRecord) bool {
	if rec.Game == "scion" && len(rec.Callings) < 3 {
		return false
	}
	return true
}
