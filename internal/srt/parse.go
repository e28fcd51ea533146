package srt

import (
	"fmt"
	"io"
	"strings"
)

// Parse reads SRT content and returns the well-formed entries plus a list of
// issues for blocks it had to skip. Malformed blocks never abort the parse.
// Multi-line cue text is joined with a single space.
func Parse(r io.Reader) ([]Entry, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read srt: %w", err)
	}

	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	blocks := splitBlocks(normalized)

	entries := make([]Entry, 0, len(blocks))
	var issues []string
	for i, block := range blocks {
		entry, issue := parseBlock(block)
		if issue != "" {
			issues = append(issues, fmt.Sprintf("block %d: %s", i+1, issue))
			continue
		}
		entry.Index = len(entries) + 1
		entries = append(entries, entry)
	}
	return entries, issues, nil
}

func splitBlocks(content string) []string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil
	}
	raw := strings.Split(trimmed, "\n\n")
	blocks := make([]string, 0, len(raw))
	for _, block := range raw {
		if strings.TrimSpace(block) != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

func parseBlock(block string) (Entry, string) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	pos := 0
	if pos < len(lines) && isNumeric(lines[pos]) {
		pos++
	}
	if pos >= len(lines) || !strings.Contains(lines[pos], "-->") {
		return Entry{}, "missing timecode line"
	}

	parts := strings.SplitN(lines[pos], "-->", 2)
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Entry{}, fmt.Sprintf("bad start time: %v", err)
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Entry{}, fmt.Sprintf("bad end time: %v", err)
	}
	if start >= end {
		return Entry{}, fmt.Sprintf("start %s not before end %s", Timestamp(start), Timestamp(end))
	}
	pos++

	text := make([]string, 0, len(lines)-pos)
	for _, line := range lines[pos:] {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			text = append(text, trimmed)
		}
	}
	return Entry{Start: start, End: end, Text: strings.Join(text, " ")}, ""
}

func isNumeric(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
