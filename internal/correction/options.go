package correction

import (
	"fmt"
	"regexp"
)

// DefaultMinTextLength is the garbage cutoff applied when Options leaves
// MinTextLength unset.
const DefaultMinTextLength = 3

// TextMode selects how merged records contribute to their anchor's text.
type TextMode string

const (
	// TextModeTiming keeps the anchor's text; merged records contribute
	// timing only.
	TextModeTiming TextMode = "timing"
	// TextModeGuess replaces the anchor's text with the consensus pick
	// among the merge group's near-duplicate texts.
	TextModeGuess TextMode = "guess"
)

// Options carries every tunable the engine accepts. Nothing in this package
// reads module-level configuration.
type Options struct {
	// MergeThreshold is the minimum similarity score, in [0,1], at which a
	// record merges into its predecessor.
	MergeThreshold float64
	// MinTextLength is the garbage cutoff: trimmed text shorter than this
	// is noise. Zero means DefaultMinTextLength.
	MinTextLength int
	// DeletePatterns flags any matching text as garbage regardless of
	// length.
	DeletePatterns []*regexp.Regexp
	// IgnoreCase folds case before similarity comparison.
	IgnoreCase bool
	// TextMode selects merge text handling at finalization. Empty means
	// TextModeTiming.
	TextMode TextMode
}

// Validate rejects out-of-range tunables before the planner runs.
func (o Options) Validate() error {
	if o.MergeThreshold < 0 || o.MergeThreshold > 1 {
		return fmt.Errorf("merge threshold %v outside [0,1]", o.MergeThreshold)
	}
	if o.MinTextLength < 0 {
		return fmt.Errorf("min text length %d is negative", o.MinTextLength)
	}
	switch o.TextMode {
	case "", TextModeTiming, TextModeGuess:
	default:
		return fmt.Errorf("unknown text mode %q", o.TextMode)
	}
	return nil
}

// CompilePatterns compiles delete-pattern expressions for Options, rejecting
// the first invalid one.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("delete pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func (o Options) minTextLength() int {
	if o.MinTextLength == 0 {
		return DefaultMinTextLength
	}
	return o.MinTextLength
}
