package core

import (
	"regexp"
	"strings"
)

var (
	slugParens   = regexp.MustCompile(`\(.*\)`)
	slugSubtitle = regexp.MustCompile(` - .+`)
	slugNonAlnum = regexp.MustCompile(`[^a-z\d]`)
	slugDashRuns = regexp.MustCompile(`-+`)
	slugEdgeDash = regexp.MustCompile(`^-|-$`)
)

// SlugifyName derives a filesystem-safe slug from a mod's display name, used
// to name local mod metadata files. Parenthesized qualifiers and " - "
// subtitles are stripped first so "Iris (Fabric) - Shaders" and "Iris" land
// on the same slug.
func SlugifyName(name string) string {
	lower := strings.ToLower(name)
	noBrackets := slugParens.ReplaceAllString(lower, "")
	noSuffix := slugSubtitle.ReplaceAllString(noBrackets, "")
	limitedChars := slugNonAlnum.ReplaceAllString(noSuffix, "-")
	collapsed := slugDashRuns.ReplaceAllString(limitedChars, "-")
	return slugEdgeDash.ReplaceAllString(collapsed, "")
}
