package bubbles

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vovakirdan/bubblegrid/internal/config"
	"github.com/vovakirdan/bubblegrid/internal/core"
	"github.com/vovakirdan/bubblegrid/internal/grid"
	"github.com/vovakirdan/bubblegrid/internal/registry"
)

func testConfig() config.BubblesConfig {
	cfg := config.DefaultBubblesConfig()
	cfg.Difficulty.Enabled = false
	return cfg
}

func newTestGame(t *testing.T, mode Mode, cfg config.BubblesConfig) *Game {
	t.Helper()
	g := (&Game{mode: mode}).WithConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 1})
	if err := g.ConfigError(); err != nil {
		t.Fatalf("ConfigError: %v", err)
	}
	return g
}

// setBoard replaces the game's board with cells on an anchoredLeft=false
// board of the same size.
func setBoard(t *testing.T, g *Game, cells map[grid.Pos]grid.Color, current grid.Color) {
	t.Helper()
	b, err := grid.NewFromBoard(g.board.Config(), g.rng, grid.Board{
		Cells:   cells,
		Current: &current,
	})
	if err != nil {
		t.Fatalf("NewFromBoard: %v", err)
	}
	g.board = b
}

func hasEvent(events []core.Event, kind core.EventKind) (core.Event, bool) {
	for _, e := range events {
		if e.Kind == kind {
			return e, true
		}
	}
	return core.Event{}, false
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"bubbles", "bubbles_endless", "bubbles_puzzle"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%s).ID() = %s", id, g.ID())
		}
		if g.Controls() == "" {
			t.Errorf("%s has no controls", id)
		}
	}
}

func TestAimClamped(t *testing.T) {
	g := newTestGame(t, ModeClassic, testConfig())

	for i := 0; i < 40; i++ {
		g.Step(core.InputOf(core.ActionRight))
	}
	if g.Aim() != 80 {
		t.Errorf("Aim() = %v, want 80", g.Aim())
	}

	g.Step(core.InputOf(core.ActionFineLeft))
	if g.Aim() != 79 {
		t.Errorf("Aim() after fine left = %v, want 79", g.Aim())
	}

	g.SetAim(-200)
	if g.Aim() != -80 {
		t.Errorf("SetAim(-200) gave %v, want -80", g.Aim())
	}
}

func TestResolvePopAndDrop(t *testing.T) {
	g := newTestGame(t, ModeClassic, testConfig())
	setBoard(t, g, map[grid.Pos]grid.Color{
		grid.P(0, 0): grid.ColorRed,
		grid.P(1, 0): grid.ColorRed,
		grid.P(0, 1): grid.ColorGreen, // hangs only from (0,0)
		grid.P(5, 0): grid.ColorBlue,
	}, grid.ColorRed)

	events := g.resolve(grid.P(2, 0))

	if e, ok := hasEvent(events, core.EventPop); !ok || e.Count != 3 {
		t.Errorf("pop event = %+v, %v; want 3 cells", e, ok)
	}
	if e, ok := hasEvent(events, core.EventDrop); !ok || e.Count != 1 {
		t.Errorf("drop event = %+v, %v; want 1 cell", e, ok)
	}
	if g.score != 400 {
		t.Errorf("score = %d, want 400", g.score)
	}
	if g.board.OccupiedCount() != 1 {
		t.Errorf("OccupiedCount() = %d, want 1", g.board.OccupiedCount())
	}
	if g.gameOver {
		t.Error("game should continue with a cell left")
	}
	if next, _ := g.board.NextBullet(); next.Color() != grid.ColorBlue {
		t.Errorf("next bullet = %v, want blue (only color left)", next.Color())
	}

	turn := g.LastTurn()
	if len(turn.Popped) != 3 || len(turn.Dropped) != 1 || turn.Attached.Pos() != grid.P(2, 0) {
		t.Errorf("LastTurn() = %+v", turn)
	}
	st := g.Stats()
	if st.Shots != 1 || st.Popped != 3 || st.Dropped != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestResolveNoMatch(t *testing.T) {
	g := newTestGame(t, ModeClassic, testConfig())
	setBoard(t, g, map[grid.Pos]grid.Color{
		grid.P(0, 0): grid.ColorBlue,
	}, grid.ColorRed)

	events := g.resolve(grid.P(1, 0))
	if _, ok := hasEvent(events, core.EventPop); ok {
		t.Error("no pop expected")
	}
	if g.board.OccupiedCount() != 2 || g.score != 0 {
		t.Errorf("occupied=%d score=%d, want 2 and 0", g.board.OccupiedCount(), g.score)
	}
}

func TestClearModes(t *testing.T) {
	cells := func() map[grid.Pos]grid.Color {
		return map[grid.Pos]grid.Color{
			grid.P(0, 0): grid.ColorRed,
			grid.P(1, 0): grid.ColorRed,
		}
	}

	t.Run("classic wins", func(t *testing.T) {
		g := newTestGame(t, ModeClassic, testConfig())
		setBoard(t, g, cells(), grid.ColorRed)
		events := g.resolve(grid.P(2, 0))

		if _, ok := hasEvent(events, core.EventCleared); !ok {
			t.Error("expected cleared event")
		}
		st := g.State()
		if !st.GameOver || !st.Won {
			t.Errorf("State() = %+v, want won", st)
		}
		if g.Snapshot().State != StateWin {
			t.Errorf("snapshot state = %s", g.Snapshot().State)
		}
	})

	t.Run("endless refills", func(t *testing.T) {
		cfg := testConfig()
		g := newTestGame(t, ModeEndless, cfg)
		setBoard(t, g, cells(), grid.ColorRed)
		g.resolve(grid.P(2, 0))

		if g.gameOver {
			t.Fatal("endless should keep going")
		}
		if want := 3*cfg.Scoring.PointsPerCell + cfg.Scoring.ClearBonus; g.score != want {
			t.Errorf("score = %d, want %d", g.score, want)
		}
		if want := cfg.Grid.Columns * cfg.Grid.InitialRows; g.board.OccupiedCount() != want {
			t.Errorf("refilled board has %d cells, want %d", g.board.OccupiedCount(), want)
		}
		if g.Stats().Clears != 1 {
			t.Errorf("Clears = %d, want 1", g.Stats().Clears)
		}
	})

	t.Run("puzzle advances then wins", func(t *testing.T) {
		g := newTestGame(t, ModePuzzle, testConfig())
		if g.Level() != 1 || g.LayoutName() != "Warm-up" {
			t.Fatalf("start = %d %q", g.Level(), g.LayoutName())
		}

		setBoard(t, g, cells(), grid.ColorRed)
		g.resolve(grid.P(2, 0))
		if g.Snapshot().State != StateLevelCleared {
			t.Fatalf("state = %s, want level_cleared", g.Snapshot().State)
		}
		for i := 0; i < levelClearTicks; i++ {
			g.Step(core.NewInputFrame())
		}
		if g.Level() != 2 || g.gameOver {
			t.Fatalf("after clear: level %d, over %v", g.Level(), g.gameOver)
		}

		g.levelIndex = len(g.layouts) - 1
		setBoard(t, g, cells(), grid.ColorRed)
		g.resolve(grid.P(2, 0))
		for i := 0; i < levelClearTicks; i++ {
			g.Step(core.NewInputFrame())
		}
		if !g.won || !g.gameOver {
			t.Error("clearing the last layout should win")
		}
	})
}

func TestDropTimer(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.DropInterval = 1
	g := newTestGame(t, ModeClassic, cfg)
	before := g.board.OccupiedCount()

	for i := 1; i < 60; i++ {
		res := g.Step(core.NewInputFrame())
		if _, ok := hasEvent(res.Events, core.EventRowAdded); ok {
			t.Fatalf("row added early at tick %d", i)
		}
	}
	res := g.Step(core.NewInputFrame())
	if _, ok := hasEvent(res.Events, core.EventRowAdded); !ok {
		t.Fatal("expected a row on tick 60")
	}
	if got := g.board.OccupiedCount(); got != before+cfg.Grid.Columns {
		t.Errorf("OccupiedCount() = %d, want %d", got, before+cfg.Grid.Columns)
	}
	if g.Stats().RowsAdded != 1 {
		t.Errorf("RowsAdded = %d", g.Stats().RowsAdded)
	}
}

func TestDefeatAtBottom(t *testing.T) {
	cfg := testConfig()
	cfg.Grid.Rows = 8
	cfg.Grid.InitialRows = 5
	cfg.Timing.DropInterval = 0.1
	g := newTestGame(t, ModeClassic, cfg)

	defeated := false
	for i := 0; i < 100 && !g.gameOver; i++ {
		res := g.Step(core.NewInputFrame())
		if _, ok := hasEvent(res.Events, core.EventDefeat); ok {
			defeated = true
		}
	}
	if !defeated || !g.State().GameOver || g.State().Won {
		t.Fatalf("expected defeat, state %+v", g.State())
	}
	if g.Stats().RowsAdded != 3 {
		t.Errorf("RowsAdded = %d, want 3", g.Stats().RowsAdded)
	}

	g.Step(core.InputOf(core.ActionRestart))
	if g.gameOver || g.Tick() != 0 {
		t.Errorf("restart: over=%v tick=%d", g.gameOver, g.Tick())
	}
}

func TestGameEndTearsDownBoard(t *testing.T) {
	tests := []struct {
		name    string
		play    func(t *testing.T) *Game
		won     bool
		overlay string
	}{
		{
			name: "classic win",
			play: func(t *testing.T) *Game {
				g := newTestGame(t, ModeClassic, testConfig())
				setBoard(t, g, map[grid.Pos]grid.Color{
					grid.P(0, 0): grid.ColorRed,
					grid.P(1, 0): grid.ColorRed,
				}, grid.ColorRed)
				g.resolve(grid.P(2, 0))
				return g
			},
			won:     true,
			overlay: "YOU WIN!",
		},
		{
			name: "defeat",
			play: func(t *testing.T) *Game {
				cfg := testConfig()
				cfg.Grid.Rows = 8
				cfg.Grid.InitialRows = 5
				cfg.Timing.DropInterval = 0.1
				g := newTestGame(t, ModeClassic, cfg)
				for i := 0; i < 100 && !g.gameOver; i++ {
					g.Step(core.NewInputFrame())
				}
				return g
			},
			overlay: "GAME OVER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.play(t)
			st := g.State()
			if !st.GameOver || st.Won != tt.won {
				t.Fatalf("State() = %+v, want over with won=%v", st, tt.won)
			}

			if n := g.board.OccupiedCount(); n != 0 {
				t.Errorf("OccupiedCount() = %d after game end, want 0", n)
			}
			if _, ok := g.board.CurrentBullet(); ok {
				t.Error("current bullet survived game end")
			}
			if _, ok := g.board.NextBullet(); ok {
				t.Error("next bullet survived game end")
			}
			if c := g.board.ActiveColors(); len(c) != 0 {
				t.Errorf("ActiveColors() = %v, want none", c)
			}

			snap := g.Snapshot()
			if snap.Occupied != 0 || snap.InFlight {
				t.Errorf("Snapshot() = %+v", snap)
			}

			scr := core.NewScreen(80, 40)
			g.Render(scr)
			out := scr.String()
			if !strings.Contains(out, tt.overlay) {
				t.Errorf("render missing %q", tt.overlay)
			}
			if want := fmt.Sprintf("Score: %d", st.Score); !strings.Contains(out, want) {
				t.Errorf("render missing %q", want)
			}

			tick := g.Tick()
			g.Step(core.InputOf(core.ActionFire))
			if g.Tick() != tick || g.InFlight() {
				t.Errorf("fire after game end: tick %d -> %d, inflight=%v", tick, g.Tick(), g.InFlight())
			}

			g.Step(core.InputOf(core.ActionRestart))
			if g.gameOver || g.board.OccupiedCount() == 0 {
				t.Errorf("restart: over=%v occupied=%d", g.gameOver, g.board.OccupiedCount())
			}
			if _, ok := g.board.CurrentBullet(); !ok {
				t.Error("restart: no current bullet")
			}
		})
	}
}

func TestPauseStopsClock(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.DropInterval = 1
	g := newTestGame(t, ModeClassic, cfg)

	g.Step(core.InputOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	for i := 0; i < 120; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Stats().RowsAdded != 0 {
		t.Error("rows added while paused")
	}
	g.Step(core.InputOf(core.ActionPause))
	if g.State().Paused {
		t.Error("expected resumed")
	}
}

func TestPauseHoldsTimeProgression(t *testing.T) {
	cfg := testConfig()
	cfg.Timing.DropInterval = 20
	cfg.Difficulty = config.DifficultyConfig{
		Enabled:     true,
		Progression: config.ProgressionConfig{Type: "time", MaxAt: 600},
		Scaling:     config.ScalingConfig{IntervalReduction: 0.5},
	}
	g := newTestGame(t, ModeClassic, cfg)

	g.Step(core.NewInputFrame())
	g.Step(core.InputOf(core.ActionPause))
	tick, interval := g.Tick(), g.dropTicks()

	for i := 0; i < 600; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Tick() != tick {
		t.Errorf("Tick() = %d after paused steps, want %d", g.Tick(), tick)
	}
	if got := g.dropTicks(); got != interval {
		t.Errorf("dropTicks() = %d after paused steps, want %d", got, interval)
	}

	g.Step(core.InputOf(core.ActionPause))
	for i := 0; i < 300; i++ {
		g.Step(core.NewInputFrame())
	}
	if got := g.dropTicks(); got >= interval {
		t.Errorf("dropTicks() = %d after playing, want below %d", got, interval)
	}
}

func TestShotLands(t *testing.T) {
	g := newTestGame(t, ModeClassic, testConfig())
	before := g.board.OccupiedCount()

	g.Step(core.InputOf(core.ActionFire))
	if !g.InFlight() {
		t.Fatal("expected a bullet in flight")
	}
	landed := false
	for i := 0; i < 600; i++ {
		res := g.Step(core.NewInputFrame())
		if _, ok := hasEvent(res.Events, core.EventShot); ok {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("bullet never landed")
	}
	if g.InFlight() {
		t.Error("bullet still in flight after landing")
	}
	if g.Stats().Shots != 1 {
		t.Errorf("Shots = %d", g.Stats().Shots)
	}
	// Either it stuck or it popped at least the minimum match.
	after := g.board.OccupiedCount()
	if after != before+1 && after > before+1-3 {
		t.Errorf("occupied %d -> %d", before, after)
	}
}

func TestTrace(t *testing.T) {
	g := newTestGame(t, ModeClassic, testConfig())
	b := g.board

	for a := -80.0; a <= 80; a += 10 {
		p, ok := Trace(b, a)
		if !ok {
			t.Fatalf("Trace(%v) found nothing", a)
		}
		if !b.IsEmpty(p) || !supported(b, p) {
			t.Errorf("Trace(%v) = %s, not an empty supported slot", a, p)
		}
	}
}

func TestTraceStraightUp(t *testing.T) {
	cfg := testConfig()
	cfg.Grid.Columns = 4
	cfg.Grid.Rows = 6
	cfg.Grid.InitialRows = 1
	g := newTestGame(t, ModeClassic, cfg)
	setBoard(t, g, map[grid.Pos]grid.Color{
		grid.P(0, 0): grid.ColorRed,
		grid.P(1, 0): grid.ColorRed,
		grid.P(2, 0): grid.ColorRed,
		grid.P(3, 0): grid.ColorRed,
	}, grid.ColorBlue)

	p, ok := Trace(g.board, 0)
	if !ok || p != grid.P(2, 1) {
		t.Errorf("Trace(0) = %s, %v; want (2,1)", p, ok)
	}
}

func TestBotPrefersMatch(t *testing.T) {
	cfg := testConfig()
	cfg.Grid.Columns = 4
	cfg.Grid.Rows = 6
	cfg.Grid.InitialRows = 1
	g := newTestGame(t, ModeClassic, cfg)
	setBoard(t, g, map[grid.Pos]grid.Color{
		grid.P(0, 0): grid.ColorRed,
		grid.P(1, 0): grid.ColorRed,
		grid.P(3, 0): grid.ColorBlue,
	}, grid.ColorRed)

	m, ok := NewBot().FindBestMove(g.board, 80)
	if !ok {
		t.Fatal("no move found")
	}
	if m.Target != grid.P(2, 0) || m.Score != 300 {
		t.Errorf("FindBestMove = %+v, want target (2,0) score 300", m)
	}
	if g.board.OccupiedCount() != 3 {
		t.Error("FindBestMove modified the board")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := (&Game{mode: ModeEndless}).WithConfig(testConfig())
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 42})
		bot := Bot{Step: 5}
		for i := 0; i < 3000 && !g.gameOver; i++ {
			g.Step(bot.Autoplay(g))
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed diverged:\n%+v\n%+v", a, b)
	}
	if a.Stats.Shots == 0 {
		t.Error("bot never fired")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, ModeClassic, testConfig())
	scr := core.NewScreen(80, 40)
	g.Render(scr)
	out := scr.String()

	for _, want := range []string{"Bubbles", "Score: 0", "Next"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if n := strings.Count(out, string(bubbleRune)); n < g.board.OccupiedCount() {
		t.Errorf("rendered %d bubbles, board has %d", n, g.board.OccupiedCount())
	}

	small := (&Game{mode: ModeClassic}).WithConfig(testConfig())
	small.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 60, Seed: 1})
	scr = core.NewScreen(20, 10)
	small.Render(scr)
	if !strings.Contains(scr.String(), "Window too small") {
		t.Error("expected too-small message")
	}
	if small.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s", small.Snapshot().State)
	}
}
