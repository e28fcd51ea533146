package main

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// printTable renders rows to w in the shared table style. Column numbers in
// rightAligned (1-based) are right-aligned; everything else stays left.
func printTable(w io.Writer, headers []string, rows [][]string, rightAligned ...int) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(row))
		for i, cell := range row {
			r[i] = cell
		}
		tw.AppendRow(r)
	}

	if len(rightAligned) > 0 {
		configs := make([]table.ColumnConfig, 0, len(rightAligned))
		for _, col := range rightAligned {
			configs = append(configs, table.ColumnConfig{Number: col, Align: text.AlignRight})
		}
		tw.SetColumnConfigs(configs)
	}

	tw.Render()
}

// truncate shortens cell text so wide subtitle lines keep tables readable.
func truncate(value string, max int) string {
	if max <= 3 || len([]rune(value)) <= max {
		return value
	}
	runes := []rune(value)
	return string(runes[:max-3]) + "..."
}
