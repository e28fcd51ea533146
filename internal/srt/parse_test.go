package srt

import (
	"strings"
	"testing"
	"time"
)

func TestParseReadsEntries(t *testing.T) {
	raw := `1
00:00:01,000 --> 00:00:03,000
Hello there

2
00:00:04,000 --> 00:00:06,000
Second line
continued
`
	entries, issues, err := Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %v", issues)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Index != 1 || entries[1].Index != 2 {
		t.Fatalf("expected sequential indices, got %d and %d", entries[0].Index, entries[1].Index)
	}
	if entries[0].Text != "Hello there" {
		t.Fatalf("unexpected first text: %q", entries[0].Text)
	}
	if entries[1].Text != "Second line continued" {
		t.Fatalf("expected multi-line text joined with space, got %q", entries[1].Text)
	}
	if entries[0].Start != time.Second || entries[0].End != 3*time.Second {
		t.Fatalf("unexpected first entry times: %v %v", entries[0].Start, entries[0].End)
	}
}

func TestParseFlagsMalformedBlocks(t *testing.T) {
	raw := `1
00:00:01,000 --> 00:00:03,000
Good one

2
not a timecode
Broken

3
00:00:09,000 --> 00:00:07,000
Reversed times

4
00:00:10,000 --> 00:00:12,000
Still good
`
	entries, issues, err := Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 surviving entries, got %d", len(entries))
	}
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}
	if entries[0].Text != "Good one" || entries[1].Text != "Still good" {
		t.Fatalf("unexpected surviving entries: %q %q", entries[0].Text, entries[1].Text)
	}
	if entries[1].Index != 2 {
		t.Fatalf("expected surviving entries renumbered, got index %d", entries[1].Index)
	}
}

func TestParseEmptyInput(t *testing.T) {
	entries, issues, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 0 || len(issues) != 0 {
		t.Fatalf("expected empty result, got %d entries %d issues", len(entries), len(issues))
	}
}

func TestParseHandlesCRLF(t *testing.T) {
	raw := "1\r\n00:00:01,000 --> 00:00:02,000\r\nWindows line endings\r\n\r\n"
	entries, _, err := Parse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Text != "Windows line endings" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestWriteRenumbersAndFormats(t *testing.T) {
	entries := []Entry{
		{Index: 3, Start: time.Second, End: 2 * time.Second, Text: "First"},
		{Index: 7, Start: 4 * time.Second, End: 6 * time.Second, Text: "Second"},
	}
	var sb strings.Builder
	if err := Write(&sb, entries); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	want := "1\n00:00:01,000 --> 00:00:02,000\nFirst\n\n2\n00:00:04,000 --> 00:00:06,000\nSecond\n\n"
	if sb.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestWriteEmptyList(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, nil); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if sb.Len() != 0 {
		t.Fatalf("expected empty output, got %q", sb.String())
	}
}

func TestCleanText(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{`Hello\nthere`, "Hello there"},
		{`tab\tseparated`, "tab separated"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := CleanText(tc.input); got != tc.want {
			t.Fatalf("CleanText(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
