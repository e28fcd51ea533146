package correction

import (
	"time"

	"subfix/internal/srt"
)

// Verb tags what happens to a record at serialization.
type Verb string

const (
	// VerbKeep emits the record as an output entry.
	VerbKeep Verb = "keep"
	// VerbDelete drops the record entirely.
	VerbDelete Verb = "delete"
	// VerbMerge drops the record's text but folds its timing into the
	// nearest preceding keep record.
	VerbMerge Verb = "merge"
)

var verbSet = map[Verb]struct{}{
	VerbKeep:   {},
	VerbDelete: {},
	VerbMerge:  {},
}

// ValidVerb reports whether value names a known verb.
func ValidVerb(value Verb) bool {
	_, ok := verbSet[value]
	return ok
}

// Action is the reviewable record derived from one subtitle entry. Text and
// Verb are editable by the review surface; EffectiveEnd is maintained by
// PropagateTimings.
type Action struct {
	EntryIndex   int
	Verb         Verb
	Text         string
	Start        time.Duration
	End          time.Duration
	EffectiveEnd time.Duration
}

// PropagateTimings recomputes every keep record's EffectiveEnd from the
// current verbs. A chain of consecutive merge records extends its anchor
// keep record's end to the last merged record's original end; delete records
// are invisible to chains. Safe to call repeatedly, including after review
// edits reassign verbs.
func PropagateTimings(actions []Action) {
	for i := range actions {
		actions[i].EffectiveEnd = actions[i].End
	}
	anchor := -1
	for i := range actions {
		switch actions[i].Verb {
		case VerbKeep:
			anchor = i
		case VerbMerge:
			if anchor >= 0 {
				actions[anchor].EffectiveEnd = actions[i].End
			}
		}
	}
}

// Finalize consumes a reviewed action list and produces the output entries:
// delete and merge records are omitted, keep records carry their extended
// end times and (possibly edited) text. Renumbering happens when the entries
// are written.
func Finalize(actions []Action, mode TextMode) []srt.Entry {
	entries := make([]srt.Entry, 0, len(actions))
	var group []string
	flush := func() {
		if mode == TextModeGuess && len(group) > 1 && len(entries) > 0 {
			entries[len(entries)-1].Text = BestText(group)
		}
		group = nil
	}
	for _, action := range actions {
		switch action.Verb {
		case VerbDelete:
			continue
		case VerbMerge:
			if len(group) > 0 {
				group = append(group, action.Text)
			}
		case VerbKeep:
			flush()
			entries = append(entries, srt.Entry{
				Index: action.EntryIndex,
				Start: action.Start,
				End:   action.EffectiveEnd,
				Text:  action.Text,
			})
			group = []string{action.Text}
		}
	}
	flush()
	return entries
}
