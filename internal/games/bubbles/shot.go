package bubbles

import (
	"math"

	"github.com/vovakirdan/bubblegrid/internal/core"
	"github.com/vovakirdan/bubblegrid/internal/grid"
)

const (
	subStep      = 0.1  // world units moved between collision checks
	contactDist2 = 0.81 // a bullet touches a cell closer than 0.9 units
	maxTrace     = 4000 // sub-steps before a traced shot is given up on
)

// shot is a bullet in flight, in world coordinates.
type shot struct {
	pos   core.Vec
	dir   core.Vec // unit vector
	color grid.Color
}

// Origin returns the launcher position in world coordinates: centered, one
// row below the board.
func Origin(b *grid.Grid) core.Vec {
	return core.Vec{X: b.Width() / 2, Y: float64(b.Rows())}
}

// launch fires the current bullet at the current aim.
func (g *Game) launch() {
	cur, ok := g.board.CurrentBullet()
	if !ok {
		return
	}
	g.shot = &shot{
		pos:   Origin(g.board),
		dir:   core.FromAngle(g.aim),
		color: cur.Color(),
	}
}

// advanceShot moves the bullet for one tick. When it touches something it
// returns the empty slot it settles into.
func (g *Game) advanceShot() (grid.Pos, bool) {
	speed := g.diff.ShotSpeed(g.cfg.Timing.ShotSpeed, g.score, int(g.tick))
	if !fly(g.board, g.shot, speed/float64(g.tickRate)) {
		return grid.Pos{}, false
	}
	p, ok := settle(g.board, g.shot.pos)
	g.shot = nil
	if !ok {
		// Nowhere left to put it: the board is full.
		g.finish(false)
		return grid.Pos{}, false
	}
	return p, true
}

// fly moves s by dist world units, bouncing off the side walls, and stops as
// soon as it touches the ceiling or a cell.
func fly(b *grid.Grid, s *shot, dist float64) bool {
	w := b.Width()
	for dist > 0 {
		d := math.Min(dist, subStep)
		dist -= d
		s.pos = s.pos.Add(s.dir.Scale(d))

		if s.pos.X < 0 {
			s.pos.X = -s.pos.X
			s.dir.X = -s.dir.X
		} else if s.pos.X > w {
			s.pos.X = 2*w - s.pos.X
			s.dir.X = -s.dir.X
		}
		if touching(b, s.pos) {
			return true
		}
	}
	return false
}

func touching(b *grid.Grid, pos core.Vec) bool {
	if pos.Y <= 0 {
		return true
	}
	p := b.Snap(pos.X, pos.Y)
	for _, q := range append(b.Neighbors(p), p) {
		if _, ok := b.At(q); !ok {
			continue
		}
		x, y := b.CellCenter(q)
		if pos.Dist2(core.Vec{X: x, Y: y}) < contactDist2 {
			return true
		}
	}
	return false
}

// settle picks the empty, supported slot nearest to pos. A slot is
// supported when it is on the top row or touches an occupied cell.
func settle(b *grid.Grid, pos core.Vec) (grid.Pos, bool) {
	p := b.Snap(pos.X, pos.Y)
	p.Col = core.Clamp(p.Col, 0, b.Columns()-1)
	p.Row = core.Clamp(p.Row, 0, b.Rows()-1)

	candidates := append(b.Neighbors(p), p)
	if best, ok := nearestSlot(b, pos, candidates); ok {
		return best, true
	}

	all := make([]grid.Pos, 0, b.Columns()*b.Rows())
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Columns(); col++ {
			all = append(all, grid.P(col, row))
		}
	}
	return nearestSlot(b, pos, all)
}

func nearestSlot(b *grid.Grid, pos core.Vec, candidates []grid.Pos) (grid.Pos, bool) {
	var best grid.Pos
	bestDist := math.Inf(1)
	for _, q := range candidates {
		if !b.IsEmpty(q) || !supported(b, q) {
			continue
		}
		x, y := b.CellCenter(q)
		if d := pos.Dist2(core.Vec{X: x, Y: y}); d < bestDist {
			best, bestDist = q, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}

func supported(b *grid.Grid, p grid.Pos) bool {
	if p.Row == 0 {
		return true
	}
	for _, n := range b.Neighbors(p) {
		if _, ok := b.At(n); ok {
			return true
		}
	}
	return false
}

// Trace flies a bullet from the launcher at angle degrees without touching
// the board and returns the slot it would settle into.
func Trace(b *grid.Grid, angle float64) (grid.Pos, bool) {
	s := shot{pos: Origin(b), dir: core.FromAngle(angle)}
	if !fly(b, &s, subStep*maxTrace) {
		return grid.Pos{}, false
	}
	return settle(b, s.pos)
}

// tracePath samples the bullet's path every step units until it touches
// something or n points have been collected. Used for the aim guide.
func tracePath(b *grid.Grid, angle, step float64, n int) []core.Vec {
	s := shot{pos: Origin(b), dir: core.FromAngle(angle)}
	points := make([]core.Vec, 0, n)
	for len(points) < n {
		if fly(b, &s, step) {
			break
		}
		points = append(points, s.pos)
	}
	return points
}
