package bubbles

import (
	"github.com/vovakirdan/bubblegrid/internal/core"
	"github.com/vovakirdan/bubblegrid/internal/grid"
)

// Move is a launcher angle and where the bullet would end up.
type Move struct {
	Angle  float64
	Target grid.Pos
	Score  int
}

// Bot chooses shots by trying every angle on a copy of the board.
type Bot struct {
	Step float64 // degrees between candidate angles
}

// NewBot returns a bot that sweeps the launcher in one-degree steps.
func NewBot() Bot { return Bot{Step: 1} }

// FindBestMove returns the best-scoring move within ±maxAngle. ok is false
// when no angle lands anywhere.
func (b Bot) FindBestMove(board *grid.Grid, maxAngle float64) (Move, bool) {
	step := b.Step
	if step <= 0 {
		step = 1
	}

	var best Move
	found := false
	seen := make(map[grid.Pos]int)

	for a := -maxAngle; a <= maxAngle+1e-9; a += step {
		p, ok := Trace(board, a)
		if !ok {
			continue
		}
		score, cached := seen[p]
		if !cached {
			score = ScoreMove(board, p)
			seen[p] = score
		}
		// Ties go to the angle nearest vertical.
		if !found || score > best.Score || (score == best.Score && abs(a) < abs(best.Angle)) {
			best = Move{Angle: a, Target: p, Score: score}
			found = true
		}
	}
	return best, found
}

// ScoreMove rates attaching the current bullet at p. Removed cells count
// most, falling cells more than popped ones. Shots that pop nothing score
// by how many same-colored cells they touch, and low slots are penalized.
func ScoreMove(board *grid.Grid, p grid.Pos) int {
	sim := board.Clone()
	c, err := sim.AttachCell(p)
	if err != nil {
		return -1 << 30
	}

	score := 0
	if match, ok := sim.FindMatchSet(p); ok {
		score += 100 * sim.RemoveCells(positions(match))
		score += 150 * len(sim.FindFloatingCells())
	} else {
		for _, n := range sim.Neighbors(p) {
			if other, ok := sim.At(n); ok && other.Color() == c.Color() {
				score += 20
			}
		}
	}

	score -= p.Row
	if p.Row >= board.Rows()-2 {
		score -= 1000
	}
	return score
}

// Autoplay aims and fires for g whenever the launcher is idle and returns
// the input to feed into Step.
func (b Bot) Autoplay(g *Game) core.InputFrame {
	if g.InFlight() || g.gameOver || g.levelClear {
		return core.NewInputFrame()
	}
	if m, ok := b.FindBestMove(g.Board(), g.MaxAim()); ok {
		g.SetAim(m.Angle)
	}
	return core.InputOf(core.ActionFire)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
