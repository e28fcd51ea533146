package srt

import (
	"regexp"
	"strings"
	"time"
)

// Entry is one subtitle cue. Entries produced by Parse keep their 1-based
// position from the source file; Write renumbers on output.
type Entry struct {
	Index int
	Start time.Duration
	End   time.Duration
	Text  string
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText strips the literal escape sequences OCR tools leave behind and
// collapses whitespace runs to a single space.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, `\n`, " ")
	text = strings.ReplaceAll(text, `\t`, " ")
	text = whitespaceRun.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
