package correction

import (
	"log/slog"

	"subfix/internal/logging"
	"subfix/internal/srt"
)

// Plan runs the single sequential correction pass over entries and returns
// one action record per entry, in order. Garbage entries become delete
// records and never participate in similarity comparison; every other entry
// is scored against the nearest preceding non-deleted entry and tagged merge
// when the score reaches the threshold. Timing extension for merge chains is
// applied before returning.
//
// The input slice is never mutated. Plan fails only on invalid Options.
func Plan(entries []srt.Entry, opts Options, logger *slog.Logger) ([]Action, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	actions := make([]Action, 0, len(entries))
	prev := -1 // index into actions of the nearest non-deleted record
	for _, entry := range entries {
		action := Action{
			EntryIndex:   entry.Index,
			Verb:         VerbKeep,
			Text:         entry.Text,
			Start:        entry.Start,
			End:          entry.End,
			EffectiveEnd: entry.End,
		}
		if IsGarbage(action.Text, opts) {
			action.Verb = VerbDelete
			logger.Debug("flagged garbage entry",
				logging.Int("entry", entry.Index),
				logging.String("text", action.Text))
			actions = append(actions, action)
			continue
		}
		if prev >= 0 {
			score := Similarity(comparisonText(action.Text, opts), comparisonText(actions[prev].Text, opts))
			logger.Debug("scored against previous candidate",
				logging.Int("entry", entry.Index),
				logging.Int("candidate", actions[prev].EntryIndex),
				logging.Float64("score", score))
			if score >= opts.MergeThreshold {
				action.Verb = VerbMerge
			}
		}
		actions = append(actions, action)
		prev = len(actions) - 1
	}

	PropagateTimings(actions)
	return actions, nil
}

func comparisonText(text string, opts Options) string {
	if opts.IgnoreCase {
		return FoldCase(text)
	}
	return text
}
