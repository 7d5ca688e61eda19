package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator. Widths are
// measured on visible text so styled cells line up. Columns listed in
// rightAlign are padded on the left.
func RenderTable(headers []string, rows [][]string, rightAlign ...int) string {
	if len(headers) == 0 {
		return ""
	}
	right := make(map[int]bool, len(rightAlign))
	for _, i := range rightAlign {
		right[i] = true
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
			if style != nil {
				cell = style(cell)
			}
			if right[i] {
				b.WriteString(pad + cell)
			} else {
				b.WriteString(cell)
				if i < len(headers)-1 {
					b.WriteString(pad)
				}
			}
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	seps := make([]string, len(widths))
	for i, w := range widths {
		seps[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(seps, nil)
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
