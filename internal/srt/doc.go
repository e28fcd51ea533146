// Package srt models SubRip subtitle entries and handles reading and writing
// .srt files.
//
// The parser is tolerant by design: OCR-derived subtitle files routinely
// contain malformed blocks, and one bad cue must never abort the batch. Parse
// returns the entries it could read together with a list of issues describing
// what it skipped, so callers can surface data-quality problems without
// failing the run.
package srt
