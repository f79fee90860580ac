package grid

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// Grid is the bubble board. It owns every cell by position; callers only ever
// see Cell values. A Grid is not safe for concurrent use.
type Grid struct {
	cfg          Config
	rng          Source
	cells        []Cell // row-major, zero Cell means empty
	anchoredLeft bool

	current Cell
	next    Cell

	active []Color // refreshed by the reachability queries
	lastID CellID
}

// New validates cfg and returns an initialized grid.
func New(cfg Config, rng Source) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("grid: nil random source: %w", ErrInvalidConfig)
	}
	g := &Grid{cfg: cfg, rng: rng}
	g.Initialize()
	return g, nil
}

// Board describes a hand-built starting position.
type Board struct {
	AnchoredLeft bool
	Cells        map[Pos]Color
	Current      *Color // nil draws a random color
	Next         *Color // nil draws a random color
}

// NewFromBoard builds a grid from b instead of the random initial fill.
func NewFromBoard(cfg Config, rng Source, b Board) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("grid: nil random source: %w", ErrInvalidConfig)
	}
	g := &Grid{cfg: cfg, rng: rng}
	for p := range b.Cells {
		if !g.InBounds(p) {
			return nil, fmt.Errorf("grid: board cell %s: %w", p, ErrOutOfBounds)
		}
	}
	if c := b.Current; c != nil && !c.Valid() {
		return nil, fmt.Errorf("grid: current bullet has invalid color %d: %w", *c, ErrInvalidConfig)
	}
	if c := b.Next; c != nil && !c.Valid() {
		return nil, fmt.Errorf("grid: next bullet has invalid color %d: %w", *c, ErrInvalidConfig)
	}
	g.cells = make([]Cell, cfg.Columns*cfg.Rows)
	g.anchoredLeft = b.AnchoredLeft

	// Row-major so IDs are assigned deterministically.
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Columns; col++ {
			c, ok := b.Cells[P(col, row)]
			if !ok {
				continue
			}
			if !c.Valid() {
				return nil, fmt.Errorf("grid: board cell %s has invalid color %d: %w", P(col, row), c, ErrInvalidConfig)
			}
			g.put(g.newCell(c, P(col, row)))
		}
	}

	g.current = g.newBullet(b.Current)
	g.next = g.newBullet(b.Next)
	return g, nil
}

// Initialize clears the board, fills the initial rows with random colors and
// spawns the current and next bullets.
func (g *Grid) Initialize() {
	g.cells = make([]Cell, g.cfg.Columns*g.cfg.Rows)
	g.anchoredLeft = false
	g.active = nil

	for row := 0; row < g.cfg.InitialRows; row++ {
		for col := 0; col < g.cfg.Columns; col++ {
			g.put(g.newCell(g.randomColor(), P(col, row)))
		}
	}

	g.current = g.newCell(g.randomColor(), g.bulletPos())
	g.next = g.newCell(g.randomColor(), g.bulletPos())
}

// TearDown empties the board and discards both bullets. Safe to call twice.
func (g *Grid) TearDown() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
	g.current = Cell{}
	g.next = Cell{}
	g.active = nil
}

// Clone returns a deep copy that shares the random source.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = make([]Cell, len(g.cells))
	copy(c.cells, g.cells)
	c.active = append([]Color(nil), g.active...)
	return &c
}

// Config returns the grid's configuration.
func (g *Grid) Config() Config { return g.cfg }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.cfg.Columns }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.cfg.Rows }

// IsAnchoredLeft reports the current row parity.
func (g *Grid) IsAnchoredLeft() bool { return g.anchoredLeft }

// InBounds reports whether p addresses a slot on the board.
func (g *Grid) InBounds(p Pos) bool {
	return p.Col >= 0 && p.Col < g.cfg.Columns && p.Row >= 0 && p.Row < g.cfg.Rows
}

// At returns the cell at p. ok is false for empty or out-of-bounds slots.
func (g *Grid) At(p Pos) (Cell, bool) {
	if !g.InBounds(p) {
		return Cell{}, false
	}
	c := g.cells[g.index(p)]
	return c, !c.IsZero()
}

// IsEmpty reports whether p is an in-bounds empty slot.
func (g *Grid) IsEmpty(p Pos) bool {
	return g.InBounds(p) && g.cells[g.index(p)].IsZero()
}

// Cells returns all occupied cells in row-major order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, 0, len(g.cells))
	for _, c := range g.cells {
		if !c.IsZero() {
			out = append(out, c)
		}
	}
	return out
}

// OccupiedCount returns the number of cells on the board.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsZero() {
			n++
		}
	}
	return n
}

// LowestOccupiedRow returns the largest row index holding a cell, or -1.
func (g *Grid) LowestOccupiedRow() int {
	for i := len(g.cells) - 1; i >= 0; i-- {
		if !g.cells[i].IsZero() {
			return i / g.cfg.Columns
		}
	}
	return -1
}

// CurrentBullet returns the bullet waiting to be fired.
func (g *Grid) CurrentBullet() (Cell, bool) {
	return g.current, !g.current.IsZero()
}

// NextBullet returns the bullet queued after the current one.
func (g *Grid) NextBullet() (Cell, bool) {
	return g.next, !g.next.IsZero()
}

// ActiveColors returns the colors present in the ceiling-attached set as of
// the last FindFloatingCells or ActiveCellsCount call, in color order.
func (g *Grid) ActiveColors() []Color {
	return append([]Color(nil), g.active...)
}

// Hash returns an FNV-64a digest of parity, cells and bullets. Two grids with
// the same hash are, for all practical purposes, in the same state.
func (g *Grid) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	if g.anchoredLeft {
		write(1)
	} else {
		write(0)
	}
	for _, c := range g.cells {
		if c.IsZero() {
			write(0)
			continue
		}
		write(uint64(c.color) + 1)
	}
	for _, b := range []Cell{g.current, g.next} {
		if b.IsZero() {
			write(0)
			continue
		}
		write(uint64(b.color) + 1)
	}
	return h.Sum64()
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.cfg.Columns + p.Col
}

func (g *Grid) put(c Cell) {
	g.cells[g.index(c.pos)] = c
}

func (g *Grid) newCell(color Color, p Pos) Cell {
	g.lastID++
	return Cell{id: g.lastID, color: color, pos: p, prev: p}
}

func (g *Grid) newBullet(c *Color) Cell {
	if c != nil {
		return g.newCell(*c, g.bulletPos())
	}
	return g.newCell(g.randomColor(), g.bulletPos())
}

// bulletPos is the off-board slot bullets report before they attach.
func (g *Grid) bulletPos() Pos {
	return P(g.cfg.Columns/2, g.cfg.Rows)
}

func (g *Grid) randomColor() Color {
	return Color(g.rng.Intn(int(ColorCount)))
}
