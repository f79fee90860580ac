package grid

import "fmt"

// AttachCell places the current bullet into the empty slot p. The bullet's
// previous position becomes its launch slot and there is no pending bullet
// until CreateNextBullet is called. On error the board is unchanged.
func (g *Grid) AttachCell(p Pos) (Cell, error) {
	if g.current.IsZero() {
		return Cell{}, fmt.Errorf("grid: attach at %s: %w", p, ErrNoBullet)
	}
	if !g.InBounds(p) {
		return Cell{}, fmt.Errorf("grid: attach at %s: %w", p, ErrOutOfBounds)
	}
	if !g.IsEmpty(p) {
		return Cell{}, fmt.Errorf("grid: attach at %s: %w", p, ErrOccupied)
	}

	c := g.current
	c.prev = c.pos
	c.pos = p
	g.put(c)
	g.current = Cell{}
	return c, nil
}

// CreateNextBullet promotes the next bullet to current and spawns a new next
// bullet. Its color is drawn uniformly from the active colors, falling back
// to the configured default when the board has none.
func (g *Grid) CreateNextBullet() {
	g.current = g.next
	g.next = g.newCell(g.bulletColor(), g.bulletPos())
}

func (g *Grid) bulletColor() Color {
	if len(g.active) == 0 {
		return g.cfg.DefaultColor
	}
	return g.active[g.rng.Intn(len(g.active))]
}
