// Package grid implements the bubble board: a hexagonally offset matrix of
// colored cells, bullet placement, connectivity analysis and row shifting.
//
// This package is UI-agnostic and deterministic given a random source. It
// knows nothing about rendering, timing or input; drivers call into it.
package grid

import (
	"fmt"
	"strings"
)

// Color identifies the color of a cell.
type Color uint8

const (
	ColorBrown Color = iota
	ColorViolet
	ColorRust
	ColorRed
	ColorBlue
	ColorGreen
	ColorCount // sentinel, not a real color
)

var colorNames = [ColorCount]string{
	ColorBrown:  "brown",
	ColorViolet: "violet",
	ColorRust:   "rust",
	ColorRed:    "red",
	ColorBlue:   "blue",
	ColorGreen:  "green",
}

var colorChars = [ColorCount]rune{
	ColorBrown:  'N',
	ColorViolet: 'V',
	ColorRust:   'U',
	ColorRed:    'R',
	ColorBlue:   'B',
	ColorGreen:  'G',
}

// String returns the lowercase color name.
func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("color(%d)", uint8(c))
	}
	return colorNames[c]
}

// Char returns the single letter used by layouts and ASCII rendering.
func (c Color) Char() rune {
	if !c.Valid() {
		return '?'
	}
	return colorChars[c]
}

// Valid reports whether c is one of the real colors.
func (c Color) Valid() bool {
	return c < ColorCount
}

// ParseColor accepts a color name ("red") or its letter ("R"), case-insensitive.
func ParseColor(s string) (Color, bool) {
	s = strings.TrimSpace(s)
	for c := Color(0); c < ColorCount; c++ {
		if strings.EqualFold(s, colorNames[c]) {
			return c, true
		}
		if len(s) == 1 && strings.EqualFold(s, string(colorChars[c])) {
			return c, true
		}
	}
	return 0, false
}

// AllColors returns every real color in declaration order.
func AllColors() []Color {
	out := make([]Color, 0, ColorCount)
	for c := Color(0); c < ColorCount; c++ {
		out = append(out, c)
	}
	return out
}

// Pos addresses a slot on the board. Row 0 is the ceiling.
type Pos struct {
	Col int
	Row int
}

// P is shorthand for Pos{Col: col, Row: row}.
func P(col, row int) Pos {
	return Pos{Col: col, Row: row}
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Add returns p offset by (dc, dr).
func (p Pos) Add(dc, dr int) Pos {
	return Pos{Col: p.Col + dc, Row: p.Row + dr}
}

// CellID identifies a cell for the lifetime of a grid. IDs start at 1.
type CellID uint64

// Cell is a read-only view of a bubble. The color never changes once the cell
// exists; the position changes when the cell is attached or shifted.
type Cell struct {
	id    CellID
	color Color
	pos   Pos
	prev  Pos
}

// ID returns the stable identifier. Zero means the Cell is absent.
func (c Cell) ID() CellID { return c.id }

// Color returns the cell's color.
func (c Cell) Color() Color { return c.color }

// Pos returns the cell's current slot.
func (c Cell) Pos() Pos { return c.pos }

// PrevPos returns the slot the cell occupied before its most recent move.
// Views use it to animate attach and shift transitions.
func (c Cell) PrevPos() Pos { return c.prev }

// IsZero reports whether c is the absent cell.
func (c Cell) IsZero() bool { return c.id == 0 }

func (c Cell) String() string {
	if c.IsZero() {
		return "cell(none)"
	}
	return fmt.Sprintf("cell#%d(%s@%s)", c.id, c.color, c.pos)
}
