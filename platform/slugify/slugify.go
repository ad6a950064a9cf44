// Package slugify derives URL-safe identifiers from human-readable titles.
package slugify

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes characters and drops combining marks, turning
// "é" into "e" and "ç" into "c".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make converts a title to its slug form: diacritics stripped, lowercased,
// runs of non-alphanumeric characters collapsed to a single hyphen, and
// leading/trailing hyphens trimmed.
func Make(title string) string {
	ascii, _, err := transform.String(stripMarks, title)
	if err != nil {
		ascii = title
	}

	lowered := strings.ToLower(ascii)

	var b strings.Builder
	lastHyphen := false
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}
