package review

import (
	"subfix/internal/correction"
)

// Row is the editable tabular unit shown to the reviewer.
type Row struct {
	EntryIndex int
	Verb       string
	Text       string
}

// ToRows renders one row per action record, in original entry order.
func ToRows(actions []correction.Action) []Row {
	rows := make([]Row, len(actions))
	for i, action := range actions {
		rows[i] = Row{
			EntryIndex: action.EntryIndex,
			Verb:       string(action.Verb),
			Text:       action.Text,
		}
	}
	return rows
}

// ApplyRows reconciles edited rows against the action list and returns the
// updated list. A present row overwrites the record's verb and text; a row
// whose verb is not a known verb keeps the previous verb but still applies
// the text. A record with no matching row is an implicit delete. Rows
// referencing unknown entry indices are ignored. Merge-chain timing is
// re-propagated before returning, so verb reassignments keep the anchor
// invariant. The input slice is not mutated.
func ApplyRows(actions []correction.Action, rows []Row) []correction.Action {
	byIndex := make(map[int]Row, len(rows))
	for _, row := range rows {
		byIndex[row.EntryIndex] = row
	}

	updated := make([]correction.Action, len(actions))
	copy(updated, actions)
	for i := range updated {
		row, ok := byIndex[updated[i].EntryIndex]
		if !ok {
			updated[i].Verb = correction.VerbDelete
			continue
		}
		if verb := correction.Verb(row.Verb); correction.ValidVerb(verb) {
			updated[i].Verb = verb
		}
		updated[i].Text = row.Text
	}

	correction.PropagateTimings(updated)
	return updated
}
