package detect

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var dashReplacer = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"‐", "-",
	"‑", "-",
	"‒", "-",
	"–", "-",
	"−", "-",
)

// An em dash is punctuation in prose and a range only between numbers.
var emDashRangeRe = regexp.MustCompile(`(\d)\s*—\s*(\d)`)

// Normalize prepares extracted text for scanning: NFKC composition, unified
// line endings, and range dashes folded to ASCII hyphens. All candidate spans
// are offsets into the normalized text.
func Normalize(text string) string {
	text = dashReplacer.Replace(norm.NFKC.String(text))
	return emDashRangeRe.ReplaceAllString(text, "$1-$2")
}
