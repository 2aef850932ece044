package nmrtab

import "strings"

// tabulate renders rows as a plain aligned table: columns padded to the
// widest cell, two spaces between columns, no trailing whitespace. Rows may
// have differing lengths.
func tabulate(rows [][]string) string {
	widths := make([]int, 0)
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var builder strings.Builder
	for rowNo, row := range rows {
		if rowNo > 0 {
			builder.WriteByte('\n')
		}
		line := make([]string, 0, len(row))
		for i, cell := range row {
			line = append(line, cell+strings.Repeat(" ", widths[i]-len(cell)))
		}
		builder.WriteString(strings.TrimRight(strings.Join(line, "  "), " "))
	}
	return builder.String()
}
