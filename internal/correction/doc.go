// Package correction implements the subtitle correction engine: garbage
// classification, similarity scoring, and merge planning over OCR-derived
// subtitle entries.
//
// The engine is a deterministic single pass. Plan turns an ordered entry
// sequence into an ordered list of action records (keep, delete, merge);
// the caller exposes that list for human review and hands the reviewed list
// to Finalize to obtain the output entries. Merged records contribute their
// timing to the nearest preceding kept record; their text is dropped unless
// the guess text mode asks Finalize for a consensus pick. All tuning flows
// through Options so the same engine can be re-run with different thresholds
// without process state.
package correction
