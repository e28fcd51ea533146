// Package review translates action records to and from the editable tabular
// form exchanged with the review surface.
//
// The contract is a plain read/modify/reapply cycle: ToRows exposes one row
// per record, the rows travel through whatever surface the user edits them
// with (the CLI uses a CSV file opened in $EDITOR), and ApplyRows reconciles
// the returned rows against the record list. The adapter holds no state of
// its own; a cycle that changes nothing returns an unchanged list, and bad
// rows are dropped individually so one malformed edit never discards the
// rest of a user's work.
package review
