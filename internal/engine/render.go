package engine

import (
	"fmt"
	"strings"
)

// Render returns a text diagram of the board, highest rank first, with axis
// labels matching the coordinates moves are entered in. Read-only.
func (b *Board) Render() string {
	var sb strings.Builder
	sb.WriteString("Board:\n")
	for y := 7; y >= 0; y-- {
		sb.WriteString(strings.Repeat("-", 46))
		fmt.Fprintf(&sb, "\ny=%d  ", y)
		for x := 0; x < 8; x++ {
			sb.WriteByte('|')
			if p := b.grid[y][x]; p == nil {
				sb.WriteString("    ")
			} else {
				sb.WriteString(p.Label())
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(strings.Repeat("-", 46))
	sb.WriteString("\n     ")
	for x := 0; x < 8; x++ {
		fmt.Fprintf(&sb, "|x=%d ", x)
	}
	sb.WriteByte('|')
	return sb.String()
}
