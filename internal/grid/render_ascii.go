package grid

import (
	"fmt"
	"strings"
)

// RenderASCII draws the board as text for debugging and golden tests.
//
// Format:
//   - one line per row, cells separated by a space
//   - rows shifted half a cell right are indented by one space
//   - empty slots are '.', cells use Color.Char
//   - a footer line with the bullets and the parity
func RenderASCII(g *Grid) string {
	var sb strings.Builder

	for row := 0; row < g.cfg.Rows; row++ {
		if !g.diagonalsLeft(row) {
			sb.WriteByte(' ')
		}
		for col := 0; col < g.cfg.Columns; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			if c, ok := g.At(P(col, row)); ok {
				sb.WriteRune(c.color.Char())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(fmt.Sprintf("current=%c next=%c anchoredLeft=%t\n",
		bulletChar(g.current), bulletChar(g.next), g.anchoredLeft))
	return sb.String()
}

func bulletChar(c Cell) rune {
	if c.IsZero() {
		return '-'
	}
	return c.color.Char()
}
