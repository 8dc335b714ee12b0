package ingest

import (
	"regexp"
	"strings"
)

var (
	reLineEndings = regexp.MustCompile(`\r\n?`)
	reExcessBlank = regexp.MustCompile(`\n{3,}`)
	reHorizontal  = regexp.MustCompile(`[ \t]+`)
)

// Normalize canonicalizes extracted text: CR/CRLF become "\n", runs of
// three or more newlines collapse to two (paragraph breaks survive,
// excessive gaps don't), runs of spaces and tabs collapse to one space,
// and the result is trimmed. Pure and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	s := reLineEndings.ReplaceAllString(raw, "\n")
	s = reExcessBlank.ReplaceAllString(s, "\n\n")
	s = reHorizontal.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
