// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package summary

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// RenderText draws a cross-tab as a bordered text table with the
// Row Total column and Total footer
func RenderText(w io.Writer, t *Table) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	header := make([]string, 0, len(t.Columns)+2)
	header = append(header, "")
	header = append(header, t.Columns...)
	tw.SetHeader(append(header, RowTotalLabel))

	for _, row := range t.Rows {
		line := make([]string, 0, len(row.Cells)+2)
		line = append(line, row.Label)
		for _, n := range row.Cells {
			line = append(line, strconv.Itoa(n))
		}
		tw.Append(append(line, strconv.Itoa(row.Total)))
	}

	footer := make([]string, 0, len(t.Totals)+2)
	footer = append(footer, TotalLabel)
	for _, n := range t.Totals {
		footer = append(footer, strconv.Itoa(n))
	}
	tw.SetFooter(append(footer, strconv.Itoa(t.GrandTotal)))

	tw.Render()
}
