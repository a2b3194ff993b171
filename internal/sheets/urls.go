// Package sheets holds the pure helpers of the provisioning workflow:
// canonical URL building, share-link decoding, name derivation, and the
// per-game masterlist row layout.
package sheets

import (
	"net/url"
	"regexp"
	"strings"
)

// callingsDelims splits a raw callings string on any run of comma, period,
// hyphen, percent, or whitespace.
var callingsDelims = regexp.MustCompile(`[,.\-%\s]+`)

// BuildURL returns the canonical URL for a Google file. Types document,
// spreadsheets and slide live under docs.google.com with an optional action
// suffix (e.g. "edit"); everything else falls back to a drive open link.
// The exact shapes are load-bearing: the masterlist and the profile artifact
// embed these strings verbatim.
func BuildURL(fileType, id, action string) string {
	switch fileType {
	case "document", "spreadsheets", "slide":
		u := "https://docs.google.com/" + fileType + "/d/" + id
		if action != "" {
			u += "/" + action
		}
		return u
	}
	return "https://drive.google.com/open?id=" + id
}

// ExtractIDFromShareLink decodes a shareable link into a bare file ID.
// An id query parameter wins; otherwise the final path segment is taken.
// Both drive link shapes round-trip:
//
//	https://drive.google.com/open?id=<id>
//	https://drive.google.com/drive/folders/<id>?usp=drive_link
func ExtractIDFromShareLink(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return strings.TrimSpace(link)
	}

	if id := u.Query().Get("id"); id != "" {
		return id
	}

	bits := strings.Split(u.Path, "/")
	return bits[len(bits)-1]
}

// TypeFromMIME maps a Google Workspace MIME type to the URL type used by
// BuildURL. Unknown or non-addressable types map to the empty string.
func TypeFromMIME(mimeType string) string {
	switch mimeType {
	case "application/vnd.google-apps.document":
		return "document"
	case "application/vnd.google-apps.spreadsheet":
		return "spreadsheets"
	case "application/vnd.google-apps.presentation":
		return "slide"
	case "application/vnd.google-apps.file":
		return "file"
	}
	return ""
}

// CharacterNameFromTitle derives the character name from a source document
// title. Titles follow a "Name / Splat" convention; the first /-delimited
// segment is taken, trimmed. A title without a slash is returned whole,
// embedded commas and all. Existing documents rely on that, so it stays.
func CharacterNameFromTitle(title string) string {
	chunks := strings.Split(title, "/")
	return strings.TrimSpace(chunks[0])
}

// TrimAndSplit splits a delimiter-mixed callings string into clean entries,
// dropping empties.
func TrimAndSplit(raw string) []string {
	var out []string
	for _, part := range callingsDelims.Split(raw, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
