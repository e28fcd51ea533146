package review

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var csvHeader = []string{"index", "action", "text"}

// WriteCSV renders rows as the editable actions CSV. The header line is
// always written so a reviewer sees the column meaning.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{strconv.Itoa(row.EntryIndex), row.Verb, row.Text}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", row.EntryIndex, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses an edited actions CSV back into rows. Malformed records are
// reported as issues and skipped; they never abort the read, so the rest of
// a user's edits survive one bad line.
func ReadCSV(r io.Reader) ([]Row, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []Row
	var issues []string
	line := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			issues = append(issues, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if line == 1 && isHeader(record) {
			continue
		}
		if len(record) < 3 {
			issues = append(issues, fmt.Sprintf("line %d: expected 3 fields, got %d", line, len(record)))
			continue
		}
		index, err := strconv.Atoi(strings.TrimSpace(record[0]))
		if err != nil {
			issues = append(issues, fmt.Sprintf("line %d: bad index %q", line, record[0]))
			continue
		}
		rows = append(rows, Row{
			EntryIndex: index,
			Verb:       strings.ToLower(strings.TrimSpace(record[1])),
			Text:       record[2],
		})
	}
	return rows, issues, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), csvHeader[0])
}
