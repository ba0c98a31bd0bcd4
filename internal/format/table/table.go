package table

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// GroupSize is the number of body rows printed between separator lines.
const GroupSize = 5

// Format returns the rows padded according to the widest entry in each column.
// Cells may carry ANSI styling; widths are measured on the visible text.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	widths := make([]int, colCount)
	for _, row := range rows {
		for c, cell := range row {
			if w := ansi.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - ansi.StringWidth(cell)
			if pad < 0 {
				pad = 0
			}
			if c < len(alignments) && alignments[c] == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if c < len(row)-1 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

// Rule returns a dashed line as wide as the widest formatted line.
func Rule(lines []string) string {
	width := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > width {
			width = w
		}
	}
	return strings.Repeat("-", width)
}

// Grouped inserts sep after every GroupSize body lines. The first line is
// treated as the header and is never counted.
func Grouped(lines []string, sep string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, 0, len(lines)+len(lines)/GroupSize+1)
	out = append(out, lines[0])
	for i, line := range lines[1:] {
		if i > 0 && i%GroupSize == 0 {
			out = append(out, sep)
		}
		out = append(out, line)
	}
	return out
}
