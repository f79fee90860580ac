package grid

import "math"

// World coordinates put one cell per unit: y grows downward with y == row,
// and rows whose diagonals point right sit half a cell to the right.

// CellCenter returns the world position of the center of slot p.
func (g *Grid) CellCenter(p Pos) (x, y float64) {
	x = float64(p.Col)
	if !g.diagonalsLeft(p.Row) {
		x += 0.5
	}
	return x, float64(p.Row)
}

// Snap returns the slot whose center is nearest to the world point (x, y)
// under the current parity. The result may be out of bounds.
func (g *Grid) Snap(x, y float64) Pos {
	row := int(math.Round(y))
	if !g.diagonalsLeft(row) {
		x -= 0.5
	}
	return P(int(math.Round(x)), row)
}

// Width returns the world-space span available to cell centers, from 0 to
// the center of the last slot on a shifted row.
func (g *Grid) Width() float64 {
	return float64(g.cfg.Columns) - 0.5
}
