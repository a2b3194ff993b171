package validation

import "time"

// dateLayouts are the accepted sanction-date layouts, tried in order.
// First match wins. Nothing else is accepted; notably a two-digit-year ISO
// shape like 23-01-13 must fail.
var dateLayouts = []string{
	"1/2/06",
	"1/2/2006",
	"2006-01-02",
}

// ParseDate parses a raw date string against the accepted layouts.
// The second return value reports success; a malformed string is a normal
// outcome for callers to turn into a validation message, not an error.
func ParseDate(text string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, text); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
