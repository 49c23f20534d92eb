package util

import (
	"regexp"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrim    = regexp.MustCompile(`^-|-$`)
)

var umlautReplacer = strings.NewReplacer(
	"ä", "ae", "Ä", "ae",
	"ö", "oe", "Ö", "oe",
	"ü", "ue", "Ü", "ue",
	"ß", "ss",
)

// Slugify derives a stable identifier from a display name: lowercased,
// German umlauts transliterated, everything else collapsed to hyphens.
// The slug is computed once at creation and never recomputed, so renames
// keep the original id.
func Slugify(name string) string {
	s := umlautReplacer.Replace(name)
	s = strings.ToLower(s)
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugTrim.ReplaceAllString(s, "")
	return s
}
