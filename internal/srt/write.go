package srt

import (
	"fmt"
	"io"
)

// Write renders entries as SRT, renumbering sequentially from 1. The output
// follows the standard convention byte for byte: number line, timecode line,
// text, blank separator, trailing newline.
func Write(w io.Writer, entries []Entry) error {
	for i, entry := range entries {
		if _, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1, Timestamp(entry.Start), Timestamp(entry.End), entry.Text); err != nil {
			return fmt.Errorf("write entry %d: %w", i+1, err)
		}
	}
	return nil
}
