package correction

import (
	"strings"
	"testing"
	"time"

	"subfix/internal/srt"
)

func makeEntries(texts ...string) []srt.Entry {
	entries := make([]srt.Entry, len(texts))
	for i, text := range texts {
		entries[i] = srt.Entry{
			Index: i + 1,
			Start: time.Duration(i*2) * time.Second,
			End:   time.Duration(i*2+1) * time.Second,
			Text:  text,
		}
	}
	return entries
}

func verbs(actions []Action) []Verb {
	out := make([]Verb, len(actions))
	for i, action := range actions {
		out[i] = action.Verb
	}
	return out
}

func TestPlanRejectsBadThreshold(t *testing.T) {
	for _, threshold := range []float64{-0.1, 1.5} {
		if _, err := Plan(nil, Options{MergeThreshold: threshold}, nil); err == nil {
			t.Fatalf("expected error for threshold %v", threshold)
		}
	}
}

func TestPlanEmptyInput(t *testing.T) {
	actions, err := Plan(nil, Options{MergeThreshold: 0.5}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(actions) != 0 {
		t.Fatalf("expected no actions, got %d", len(actions))
	}
}

func TestPlanOneActionPerEntry(t *testing.T) {
	entries := makeEntries("Hello", "42", "World")
	actions, err := Plan(entries, Options{MergeThreshold: 0.9}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if len(actions) != len(entries) {
		t.Fatalf("expected %d actions, got %d", len(entries), len(actions))
	}
	for i, action := range actions {
		if action.EntryIndex != entries[i].Index {
			t.Fatalf("action %d references entry %d", i, action.EntryIndex)
		}
	}
}

func TestPlanGarbageDeleted(t *testing.T) {
	entries := makeEntries("Hi", "Hi!", "42", "Goodbye")
	actions, err := Plan(entries, Options{MergeThreshold: 0.7}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	want := []Verb{VerbDelete, VerbKeep, VerbDelete, VerbKeep}
	for i, verb := range verbs(actions) {
		if verb != want[i] {
			t.Fatalf("action %d verb = %q, want %q (all: %v)", i, verb, want[i], verbs(actions))
		}
	}
}

func TestPlanNoMergeBelowThreshold(t *testing.T) {
	// similarity("Hi!","Hi") = 1 - 1/3 ≈ 0.67, below 0.7: no merge. "42" is
	// garbage. The cutoff is lowered so two-character greetings survive.
	entries := makeEntries("Hi", "Hi!", "42", "Goodbye")
	actions, err := Plan(entries, Options{MergeThreshold: 0.7, MinTextLength: 2}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	want := []Verb{VerbKeep, VerbKeep, VerbDelete, VerbKeep}
	for i, verb := range verbs(actions) {
		if verb != want[i] {
			t.Fatalf("action %d verb = %q, want %q", i, verb, want[i])
		}
	}
	final := Finalize(actions, TextModeTiming)
	if len(final) != 3 {
		t.Fatalf("expected 3 output entries, got %d", len(final))
	}
}

func TestPlanMergesNearDuplicate(t *testing.T) {
	entries := makeEntries("Hello there", "Hello there.")
	actions, err := Plan(entries, Options{MergeThreshold: 0.9}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if actions[0].Verb != VerbKeep || actions[1].Verb != VerbMerge {
		t.Fatalf("unexpected verbs: %v", verbs(actions))
	}
	if actions[0].EffectiveEnd != entries[1].End {
		t.Fatalf("anchor EffectiveEnd = %v, want %v", actions[0].EffectiveEnd, entries[1].End)
	}
	final := Finalize(actions, TextModeTiming)
	if len(final) != 1 {
		t.Fatalf("expected 1 output entry, got %d", len(final))
	}
	if final[0].Text != "Hello there" {
		t.Fatalf("output text = %q, want anchor text", final[0].Text)
	}
	if final[0].End != entries[1].End {
		t.Fatalf("output end = %v, want %v", final[0].End, entries[1].End)
	}
}

func TestPlanMergeChainExtendsAnchorToLastEntry(t *testing.T) {
	entries := makeEntries("Hello there", "Hello there.", "Hello there!", "Hello thcre")
	actions, err := Plan(entries, Options{MergeThreshold: 0.85}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	want := []Verb{VerbKeep, VerbMerge, VerbMerge, VerbMerge}
	for i, verb := range verbs(actions) {
		if verb != want[i] {
			t.Fatalf("action %d verb = %q, want %q", i, verb, want[i])
		}
	}
	if actions[0].EffectiveEnd != entries[3].End {
		t.Fatalf("anchor EffectiveEnd = %v, want last entry end %v", actions[0].EffectiveEnd, entries[3].End)
	}
}

func TestPlanComparisonSkipsDeletedEntries(t *testing.T) {
	// The garbage entry between the duplicates must not break the
	// comparison baseline.
	entries := makeEntries("Hello there", "42", "Hello there.")
	actions, err := Plan(entries, Options{MergeThreshold: 0.9}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	want := []Verb{VerbKeep, VerbDelete, VerbMerge}
	for i, verb := range verbs(actions) {
		if verb != want[i] {
			t.Fatalf("action %d verb = %q, want %q", i, verb, want[i])
		}
	}
	if actions[0].EffectiveEnd != entries[2].End {
		t.Fatalf("anchor EffectiveEnd = %v, want %v", actions[0].EffectiveEnd, entries[2].End)
	}
}

func TestPlanThresholdMonotonicity(t *testing.T) {
	entries := makeEntries("Hello there", "Hello thare", "Goodbye now", "Goodbye cow", "Different")
	countMerges := func(threshold float64) int {
		actions, err := Plan(entries, Options{MergeThreshold: threshold}, nil)
		if err != nil {
			t.Fatalf("Plan returned error: %v", err)
		}
		merges := 0
		for _, action := range actions {
			if action.Verb == VerbMerge {
				merges++
			}
		}
		return merges
	}
	prev := -1
	for _, threshold := range []float64{1.0, 0.9, 0.7, 0.5, 0.2, 0.0} {
		merges := countMerges(threshold)
		if prev >= 0 && merges < prev {
			t.Fatalf("lowering threshold to %v decreased merges from %d to %d", threshold, prev, merges)
		}
		prev = merges
	}
}

func TestPlanIgnoreCase(t *testing.T) {
	entries := makeEntries("HELLO THERE", "hello there")
	strict, err := Plan(entries, Options{MergeThreshold: 0.95}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if strict[1].Verb == VerbMerge {
		t.Fatal("expected case-sensitive comparison not to merge")
	}
	folded, err := Plan(entries, Options{MergeThreshold: 0.95, IgnoreCase: true}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	if folded[1].Verb != VerbMerge {
		t.Fatal("expected case-folded comparison to merge")
	}
}

func TestPlanDoesNotMutateInput(t *testing.T) {
	entries := makeEntries("Hello there", "Hello there.")
	original := make([]srt.Entry, len(entries))
	copy(original, entries)
	if _, err := Plan(entries, Options{MergeThreshold: 0.9}, nil); err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	for i := range entries {
		if entries[i] != original[i] {
			t.Fatalf("entry %d mutated: %+v", i, entries[i])
		}
	}
}

func TestFinalizeAllDeleted(t *testing.T) {
	actions := []Action{
		{EntryIndex: 1, Verb: VerbDelete, Text: "a"},
		{EntryIndex: 2, Verb: VerbDelete, Text: "b"},
	}
	if got := Finalize(actions, TextModeTiming); len(got) != 0 {
		t.Fatalf("expected no output entries, got %d", len(got))
	}
	var sb strings.Builder
	if err := srt.Write(&sb, Finalize(actions, TextModeTiming)); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if sb.Len() != 0 {
		t.Fatalf("expected empty serialization, got %q", sb.String())
	}
}

func TestFinalizeGuessModePicksConsensusText(t *testing.T) {
	entries := makeEntries("Hello there", "Hxllo there", "Hello there.")
	actions, err := Plan(entries, Options{MergeThreshold: 0.8}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	final := Finalize(actions, TextModeGuess)
	if len(final) != 1 {
		t.Fatalf("expected 1 output entry, got %d", len(final))
	}
	if final[0].Text != "Hello there" {
		t.Fatalf("guessed text = %q, want %q", final[0].Text, "Hello there")
	}
}

func TestPropagateTimingsAfterVerbReassignment(t *testing.T) {
	entries := makeEntries("Hello there", "Hello there.", "Hello there!")
	actions, err := Plan(entries, Options{MergeThreshold: 0.85}, nil)
	if err != nil {
		t.Fatalf("Plan returned error: %v", err)
	}
	// Reviewer decides the last record is its own cue after all.
	actions[2].Verb = VerbKeep
	PropagateTimings(actions)
	if actions[0].EffectiveEnd != entries[1].End {
		t.Fatalf("anchor EffectiveEnd = %v, want %v", actions[0].EffectiveEnd, entries[1].End)
	}
	if actions[2].EffectiveEnd != entries[2].End {
		t.Fatalf("promoted record EffectiveEnd = %v, want its own end %v", actions[2].EffectiveEnd, entries[2].End)
	}
}
