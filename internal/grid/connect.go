package grid

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/stack"
)

// diagonalsLeft reports whether row's diagonal neighbors sit at col-1.
// Rows alternate between pointing their diagonals left and right, and the
// phase flips every time a row is inserted at the top.
func (g *Grid) diagonalsLeft(row int) bool {
	even := row%2 == 0
	return (g.anchoredLeft && even) || (!g.anchoredLeft && !even)
}

// Neighbors returns the in-bounds slots adjacent to p: left, right, up,
// down and the two diagonals chosen by the row parity.
func (g *Grid) Neighbors(p Pos) []Pos {
	dx := 1
	if g.diagonalsLeft(p.Row) {
		dx = -1
	}
	candidates := [6]Pos{
		p.Add(-1, 0),
		p.Add(1, 0),
		p.Add(0, -1),
		p.Add(0, 1),
		p.Add(dx, -1),
		p.Add(dx, 1),
	}
	out := make([]Pos, 0, len(candidates))
	for _, c := range candidates {
		if g.InBounds(c) {
			out = append(out, c)
		}
	}
	return out
}

// flood walks occupied cells reachable from seeds through cells accepted by
// keep. Seeds themselves must be occupied and accepted to be visited.
func (g *Grid) flood(seeds []Pos, keep func(Cell) bool) mapset.Set[Pos] {
	visited := mapset.New[Pos]()
	work := stack.New[Pos]()

	for _, s := range seeds {
		work.Push(s)
	}
	for work.Size() > 0 {
		p := work.Pop()
		if visited.Has(p) {
			continue
		}
		c, ok := g.At(p)
		if !ok || !keep(c) {
			continue
		}
		visited.Put(p)
		for _, n := range g.Neighbors(p) {
			if !visited.Has(n) {
				work.Push(n)
			}
		}
	}
	return visited
}

// FindMatchSet returns the same-color cluster containing the cell at p when
// it holds at least MinMatch cells. ok is false when there is no cell at p or
// the cluster is too small.
func (g *Grid) FindMatchSet(p Pos) ([]Cell, bool) {
	seed, ok := g.At(p)
	if !ok {
		return nil, false
	}
	set := g.flood([]Pos{p}, func(c Cell) bool { return c.color == seed.color })
	if set.Size() < g.cfg.MinMatch {
		return nil, false
	}
	return g.collect(set), true
}

// FindFloatingCells returns the cells that have no path to the ceiling.
// It also refreshes the active colors.
func (g *Grid) FindFloatingCells() []Cell {
	attached := g.attached()
	var out []Cell
	for _, c := range g.cells {
		if !c.IsZero() && !attached.Has(c.pos) {
			out = append(out, c)
		}
	}
	return out
}

// ActiveCellsCount returns how many cells are connected to the ceiling.
// A board with zero active cells is cleared. It also refreshes the active
// colors.
func (g *Grid) ActiveCellsCount() int {
	return g.attached().Size()
}

// attached floods from every row 0 cell regardless of color and records the
// colors it passes through.
func (g *Grid) attached() mapset.Set[Pos] {
	seeds := make([]Pos, 0, g.cfg.Columns)
	for col := 0; col < g.cfg.Columns; col++ {
		seeds = append(seeds, P(col, 0))
	}
	set := g.flood(seeds, func(Cell) bool { return true })

	colors := mapset.New[Color]()
	set.Each(func(p Pos) {
		c, _ := g.At(p)
		colors.Put(c.color)
	})
	g.active = g.active[:0]
	colors.Each(func(c Color) {
		g.active = append(g.active, c)
	})
	sort.Slice(g.active, func(i, j int) bool { return g.active[i] < g.active[j] })
	return set
}

// collect turns a position set into cells in row-major order.
func (g *Grid) collect(set mapset.Set[Pos]) []Cell {
	out := make([]Cell, 0, set.Size())
	set.Each(func(p Pos) {
		c, _ := g.At(p)
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].pos.Row != out[j].pos.Row {
			return out[i].pos.Row < out[j].pos.Row
		}
		return out[i].pos.Col < out[j].pos.Col
	})
	return out
}
