package bubbles

import (
	"github.com/vovakirdan/bubblegrid/internal/core"
	"github.com/vovakirdan/bubblegrid/internal/grid"
)

// Turn records what one landed bullet did to the board.
type Turn struct {
	Attached grid.Cell
	Popped   []grid.Cell
	Dropped  []grid.Cell
	Cleared  bool
}

// resolve attaches the current bullet at p and plays out the consequences:
// the match is removed, then whatever lost its hold falls, then the next
// bullet is drawn from the colors still attached.
func (g *Game) resolve(p grid.Pos) []core.Event {
	attached, err := g.board.AttachCell(p)
	if err != nil {
		// settle only hands out empty in-bounds slots.
		g.finish(false)
		return []core.Event{{Kind: core.EventDefeat}}
	}

	turn := Turn{Attached: attached}
	events := []core.Event{{Kind: core.EventShot, Count: 1}}
	g.stats.Shots++

	if match, ok := g.board.FindMatchSet(attached.Pos()); ok {
		n := g.board.RemoveCells(positions(match))
		turn.Popped = match
		g.stats.Popped += n
		g.score += n * g.cfg.Scoring.PointsPerCell
		events = append(events, core.Event{Kind: core.EventPop, Count: n})
	}

	// Also refreshes the colors CreateNextBullet draws from.
	if floating := g.board.FindFloatingCells(); len(floating) > 0 {
		n := g.board.RemoveCells(positions(floating))
		turn.Dropped = floating
		g.stats.Dropped += n
		g.score += n * g.cfg.Scoring.PointsPerCell * g.cfg.Scoring.FloatMultiplier
		events = append(events, core.Event{Kind: core.EventDrop, Count: n})
	}

	g.board.CreateNextBullet()

	if g.board.ActiveCellsCount() == 0 {
		turn.Cleared = true
		events = append(events, core.Event{Kind: core.EventCleared})
		g.boardCleared()
	} else if g.reachedBottom() {
		g.finish(false)
		events = append(events, core.Event{Kind: core.EventDefeat})
	}

	g.lastTurn = turn
	if len(turn.Popped) > 0 {
		g.flashLeft = flashTicks
	}
	return events
}

// boardCleared handles an empty board for the current mode.
func (g *Game) boardCleared() {
	g.stats.Clears++
	switch g.mode {
	case ModeEndless:
		g.score += g.cfg.Scoring.ClearBonus
		g.board.Initialize()
		g.dropElapsed = 0
	case ModePuzzle:
		g.levelClear = true
		g.clearTicks = 0
	default:
		g.finish(true)
	}
}

// LastTurn returns the outcome of the most recent landed bullet.
func (g *Game) LastTurn() Turn { return g.lastTurn }

func positions(cells []grid.Cell) []grid.Pos {
	out := make([]grid.Pos, len(cells))
	for i, c := range cells {
		out[i] = c.Pos()
	}
	return out
}
