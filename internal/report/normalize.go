package report

import (
	"regexp"
	"strings"
)

var (
	headingMarkers = regexp.MustCompile(`#+`)
	bulletMarkers  = regexp.MustCompile(`\*+`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Normalize strips the markdown decoration a language model wraps around its
// JSON answer and flattens the text onto one line.
func Normalize(raw string) string {
	text := strings.Replace(raw, "```json", "", 1)
	text = strings.ReplaceAll(text, "\n", " ")
	text = headingMarkers.ReplaceAllString(text, "")
	text = bulletMarkers.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	text = strings.Replace(text, "```", "", 1)
	return strings.TrimSpace(text)
}
