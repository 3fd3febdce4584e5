package markdown

import (
	"strings"
	"unicode/utf8"
)

// minColumnWidth keeps separator cells at least three dashes wide, matching
// the external formatter's own minimum.
const minColumnWidth = 3

// reflowTables finds contiguous runs of pipe table rows outside fenced
// blocks and pads every column to its widest cell. Each table in the text is
// reflowed independently.
func reflowTables(lines []string) []string {
	out := make([]string, 0, len(lines))
	inFence := false
	i := 0
	for i < len(lines) {
		line := lines[i]
		if isFenceMarker(line) {
			inFence = !inFence
			out = append(out, line)
			i++
			continue
		}
		if inFence || !isTableRow(strings.TrimSpace(line)) {
			out = append(out, line)
			i++
			continue
		}

		start := i
		for i < len(lines) && !isFenceMarker(lines[i]) && isTableRow(strings.TrimSpace(lines[i])) {
			i++
		}
		run := lines[start:i]
		if len(run) < 2 {
			out = append(out, run...)
			continue
		}
		out = append(out, reflowTable(run)...)
	}
	return out
}

type tableRow struct {
	cells     []string
	separator bool
}

func reflowTable(lines []string) []string {
	rows := make([]tableRow, 0, len(lines))
	columns := 0
	for _, line := range lines {
		cells := splitTableRow(line)
		rows = append(rows, tableRow{cells: cells, separator: isSeparatorRow(cells)})
		if len(cells) > columns {
			columns = len(cells)
		}
	}

	widths := make([]int, columns)
	for i := range widths {
		widths[i] = minColumnWidth
	}
	for _, row := range rows {
		if row.separator {
			continue
		}
		for col, cell := range row.cells {
			if w := utf8.RuneCountInString(cell); w > widths[col] {
				widths[col] = w
			}
		}
	}

	out := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		b.WriteString("|")
		for col := 0; col < columns; col++ {
			cell := ""
			if col < len(row.cells) {
				cell = row.cells[col]
			}
			b.WriteString(" ")
			if row.separator {
				b.WriteString(separatorCell(cell, widths[col]))
			} else {
				b.WriteString(padCell(cell, widths[col]))
			}
			b.WriteString(" |")
		}
		out = append(out, b.String())
	}
	return out
}

func splitTableRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")
	parts := strings.Split(trimmed, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

func isSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, cell := range cells {
		if !isSeparatorCell(cell) {
			return false
		}
	}
	return true
}

func isSeparatorCell(cell string) bool {
	body := strings.TrimSuffix(strings.TrimPrefix(cell, ":"), ":")
	if body == "" {
		return false
	}
	return strings.Count(body, "-") == len(body)
}

func padCell(cell string, width int) string {
	gap := width - utf8.RuneCountInString(cell)
	if gap <= 0 {
		return cell
	}
	return cell + strings.Repeat(" ", gap)
}

// separatorCell renders a separator as dashes of matching width, preserving
// alignment colons.
func separatorCell(cell string, width int) string {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":") && len(cell) > 1
	dashes := width
	if left {
		dashes--
	}
	if right {
		dashes--
	}
	if dashes < 1 {
		dashes = 1
	}
	var b strings.Builder
	if left {
		b.WriteString(":")
	}
	b.WriteString(strings.Repeat("-", dashes))
	if right {
		b.WriteString(":")
	}
	return b.String()
}
