package correction

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsGarbage reports whether text is noise rather than subtitle content:
// trimmed text shorter than the configured minimum, purely numeric text, or
// text matching one of the configured delete patterns. Always returns a
// verdict; empty text is garbage by the length rule.
func IsGarbage(text string, opts Options) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < opts.minTextLength() {
		return true
	}
	if allDigits(trimmed) {
		return true
	}
	for _, pattern := range opts.DeletePatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}

func allDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
