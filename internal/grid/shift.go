package grid

// RemoveCells clears the given slots and returns how many cells were removed.
// Out-of-bounds and already empty slots are skipped.
func (g *Grid) RemoveCells(positions []Pos) int {
	removed := 0
	for _, p := range positions {
		if !g.InBounds(p) {
			continue
		}
		i := g.index(p)
		if g.cells[i].IsZero() {
			continue
		}
		g.cells[i] = Cell{}
		removed++
	}
	return removed
}

// AddRow pushes every row down by one and fills row 0 with random cells.
// Cells shifted past the last row are destroyed and returned; a non-empty
// result means the board overflowed. The row parity flips.
func (g *Grid) AddRow() []Cell {
	cols, rows := g.cfg.Columns, g.cfg.Rows
	var lost []Cell

	for col := 0; col < cols; col++ {
		if c := g.cells[(rows-1)*cols+col]; !c.IsZero() {
			lost = append(lost, c)
		}
	}

	for row := rows - 1; row > 0; row-- {
		for col := 0; col < cols; col++ {
			c := g.cells[(row-1)*cols+col]
			if !c.IsZero() {
				c.prev = c.pos
				c.pos = P(col, row)
			}
			g.cells[row*cols+col] = c
		}
	}

	g.anchoredLeft = !g.anchoredLeft
	for col := 0; col < cols; col++ {
		c := g.newCell(g.randomColor(), P(col, 0))
		c.prev = P(col, -1) // slides in from above the ceiling
		g.put(c)
	}
	return lost
}
