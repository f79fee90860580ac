// Package bubbles is the bubble shooter game: a launcher at the bottom of a
// hex grid, a ceiling that comes down on a timer, and three modes built on
// the same board engine.
package bubbles

import (
	"math/rand"

	"github.com/vovakirdan/bubblegrid/internal/config"
	"github.com/vovakirdan/bubblegrid/internal/core"
	"github.com/vovakirdan/bubblegrid/internal/grid"
	"github.com/vovakirdan/bubblegrid/internal/layout"
	"github.com/vovakirdan/bubblegrid/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "classic" // clear the board to win
	ModeEndless Mode = "endless" // cleared boards refill, play until the ceiling lands
	ModePuzzle  Mode = "puzzle"  // hand-built layouts played in order
)

const (
	levelClearTicks = 90 // pause between puzzle layouts
	flashTicks      = 12 // how long popped cells stay visible
)

// Stats counts what happened during a game.
type Stats struct {
	Shots     int
	Popped    int // removed by matches
	Dropped   int // removed because they lost their hold
	RowsAdded int
	Clears    int
}

// Game implements registry.Game for all three modes.
type Game struct {
	mode     Mode
	override *config.BubblesConfig

	cfg       config.BubblesConfig
	configErr error
	diff      *config.DifficultyManager
	rng       *rand.Rand

	board    *grid.Grid
	tick     uint64
	tickRate int
	score    int
	stats    Stats

	aim         float64 // degrees from vertical, positive to the right
	shot        *shot
	dropElapsed int

	layouts    []layout.Layout
	levelIndex int

	lastTurn   Turn
	flashLeft  int
	screenW    int
	screenH    int
	gameOver   bool
	won        bool
	paused     bool
	tooSmall   bool
	levelClear bool
	clearTicks int
}

// Package-level settings applied on the next Reset, set by the CLI and menu.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	startLayout      string
	layoutDir        string
)

// SetConfigPath sets the config file path.
func SetConfigPath(path string) { configPath = path }

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) { difficultyPreset = preset }

// SetStartLayout picks the puzzle layout to start from, by id or file path.
func SetStartLayout(id string) { startLayout = id }

// SetLayoutDir adds a directory of layouts ahead of the built-in ones.
func SetLayoutDir(dir string) { layoutDir = dir }

// New creates a classic game.
func New() *Game { return &Game{mode: ModeClassic} }

// NewEndless creates an endless game.
func NewEndless() *Game { return &Game{mode: ModeEndless} }

// NewPuzzle creates a puzzle game.
func NewPuzzle() *Game { return &Game{mode: ModePuzzle} }

// WithConfig makes the game use cfg instead of loading one from disk.
func (g *Game) WithConfig(cfg config.BubblesConfig) *Game {
	g.override = &cfg
	return g
}

func init() {
	registry.Register(registry.Info{
		ID:          "bubbles",
		Title:       "Bubbles",
		Description: "Clear the board before the ceiling comes down.",
	}, func() registry.Game { return New() })
	registry.Register(registry.Info{
		ID:          "bubbles_endless",
		Title:       "Bubbles (Endless)",
		Description: "Cleared boards refill. Survive as long as you can.",
	}, func() registry.Game { return NewEndless() })
	registry.Register(registry.Info{
		ID:          "bubbles_puzzle",
		Title:       "Bubbles (Puzzle)",
		Description: "Hand-built boards, one after another.",
	}, func() registry.Game { return NewPuzzle() })
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case ModeEndless:
		return "bubbles_endless"
	case ModePuzzle:
		return "bubbles_puzzle"
	default:
		return "bubbles"
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeEndless:
		return "Bubbles (Endless)"
	case ModePuzzle:
		return "Bubbles (Puzzle)"
	default:
		return "Bubbles"
	}
}

// Mode returns the game mode.
func (g *Game) Mode() Mode { return g.mode }

// Reset initializes/restarts the game.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.score = 0
	g.stats = Stats{}
	g.aim = 0
	g.shot = nil
	g.dropElapsed = 0
	g.lastTurn = Turn{}
	g.flashLeft = 0
	g.gameOver = false
	g.won = false
	g.paused = false
	g.levelClear = false
	g.clearTicks = 0
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = 60
	}

	g.loadConfig()
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)

	if g.mode == ModePuzzle {
		g.loadLayouts()
	}
	g.newBoard()
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize adapts to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	rw, rh := g.requiredSize()
	g.tooSmall = w < rw || h < rh
}

func (g *Game) loadConfig() {
	g.configErr = nil
	if g.override != nil {
		g.cfg = *g.override
	} else {
		cfg, err := config.LoadBubbles(configPath)
		if err != nil {
			g.configErr = err
			cfg = config.DefaultBubblesConfig()
		}
		g.cfg = cfg
	}
	if difficultyPreset != "" {
		config.ApplyBubblesPreset(&g.cfg, difficultyPreset)
	}
	if err := g.cfg.Validate(); err != nil {
		g.configErr = err
		g.cfg = config.DefaultBubblesConfig()
	}
}

func (g *Game) loadLayouts() {
	g.layouts = nil
	g.levelIndex = 0

	if layoutDir != "" {
		fromDir, err := layout.NewLoader(layoutDir).LoadAll()
		if err != nil {
			g.configErr = err
		}
		g.layouts = append(g.layouts, fromDir...)
	}
	builtin, err := layout.Builtin()
	if err != nil {
		g.configErr = err
	}
	g.layouts = append(g.layouts, builtin...)

	if startLayout == "" {
		return
	}
	for i, l := range g.layouts {
		if l.ID == startLayout {
			g.levelIndex = i
			return
		}
	}
	// Not a known id: try it as a file and play only that.
	if l, err := layout.Find(startLayout, layoutDir); err == nil {
		g.layouts = []layout.Layout{l}
	} else {
		g.configErr = err
	}
}

// newBoard builds the board for the current mode and level.
func (g *Game) newBoard() {
	gc, _ := g.cfg.GridConfig() // validated in loadConfig

	if g.mode == ModePuzzle && g.levelIndex < len(g.layouts) {
		b, err := g.layouts[g.levelIndex].NewGrid(gc, g.rng)
		if err == nil {
			g.board = b
			return
		}
		g.configErr = err
	}
	g.board, _ = grid.New(gc, g.rng)
}

// ConfigError returns the problem hit while loading config or layouts,
// if any. The game falls back to defaults and keeps running.
func (g *Game) ConfigError() error { return g.configErr }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.screenW,
			ScreenH:  g.screenH,
			TickRate: g.tickRate,
		})
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	g.tick++

	if g.flashLeft > 0 {
		g.flashLeft--
	}

	if g.levelClear {
		g.clearTicks++
		if g.clearTicks >= levelClearTicks {
			g.advanceLayout()
		}
		return core.StepResult{State: g.State()}
	}

	g.handleAim(in)

	var events []core.Event
	if in.Has(core.ActionFire) && g.shot == nil {
		g.launch()
	}
	if g.shot != nil {
		if p, landed := g.advanceShot(); landed {
			events = append(events, g.resolve(p)...)
		}
	}

	if !g.gameOver && !g.levelClear {
		events = append(events, g.tickDropTimer()...)
	}

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) handleAim(in core.InputFrame) {
	switch {
	case in.Has(core.ActionLeft):
		g.aim -= g.cfg.Aim.Step
	case in.Has(core.ActionRight):
		g.aim += g.cfg.Aim.Step
	case in.Has(core.ActionFineLeft):
		g.aim -= g.cfg.Aim.FineStep
	case in.Has(core.ActionFineRight):
		g.aim += g.cfg.Aim.FineStep
	}
	g.aim = core.ClampF(g.aim, -g.cfg.Aim.MaxAngle, g.cfg.Aim.MaxAngle)
}

// tickDropTimer counts toward the next ceiling drop and performs it.
func (g *Game) tickDropTimer() []core.Event {
	g.dropElapsed++
	if g.dropElapsed < g.dropTicks() {
		return nil
	}
	g.dropElapsed = 0

	lost := g.board.AddRow()
	g.stats.RowsAdded++
	events := []core.Event{{Kind: core.EventRowAdded, Count: g.board.Columns()}}

	if len(lost) > 0 || g.reachedBottom() {
		g.finish(false)
		events = append(events, core.Event{Kind: core.EventDefeat, Count: len(lost)})
	}
	return events
}

// dropTicks is the current interval between ceiling drops in ticks.
func (g *Game) dropTicks() int {
	secs := g.diff.DropInterval(g.cfg.Timing.DropInterval, g.score, int(g.tick))
	n := int(secs * float64(g.tickRate))
	if n < 1 {
		n = 1
	}
	return n
}

// DropCountdown returns the seconds left until the ceiling comes down.
func (g *Game) DropCountdown() float64 {
	left := g.dropTicks() - g.dropElapsed
	if left < 0 {
		left = 0
	}
	return float64(left) / float64(g.tickRate)
}

// reachedBottom reports whether a cell sits on the last row.
func (g *Game) reachedBottom() bool {
	return g.board.LowestOccupiedRow() >= g.board.Rows()-1
}

// finish ends the game and tears the board down. Score, stats and the last
// turn survive for the end screen.
func (g *Game) finish(won bool) {
	g.won = won
	g.gameOver = true
	g.shot = nil
	g.board.TearDown()
}

// advanceLayout moves to the next puzzle layout, or wins after the last one.
func (g *Game) advanceLayout() {
	g.levelClear = false
	g.clearTicks = 0
	g.levelIndex++
	if g.levelIndex >= len(g.layouts) {
		g.levelIndex = len(g.layouts) - 1
		g.finish(true)
		return
	}
	g.shot = nil
	g.dropElapsed = 0
	g.aim = 0
	g.newBoard()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Board exposes the board for read-only use by renderers, the autoplayer
// and exporters.
func (g *Game) Board() *grid.Grid { return g.board }

// Stats returns the running counters.
func (g *Game) Stats() Stats { return g.stats }

// Tick returns the number of steps played since Reset. Paused steps and
// steps after the game ended do not count.
func (g *Game) Tick() uint64 { return g.tick }

// Aim returns the launcher angle in degrees.
func (g *Game) Aim() float64 { return g.aim }

// SetAim points the launcher, clamped to the configured range.
func (g *Game) SetAim(deg float64) {
	g.aim = core.ClampF(deg, -g.cfg.Aim.MaxAngle, g.cfg.Aim.MaxAngle)
}

// MaxAim returns the launcher's limit in degrees either side of vertical.
func (g *Game) MaxAim() float64 { return g.cfg.Aim.MaxAngle }

// InFlight reports whether a bullet is travelling.
func (g *Game) InFlight() bool { return g.shot != nil }

// Level returns the 1-based puzzle level, or 0 outside puzzle mode.
func (g *Game) Level() int {
	if g.mode != ModePuzzle {
		return 0
	}
	return g.levelIndex + 1
}

// LayoutName returns the current puzzle layout name.
func (g *Game) LayoutName() string {
	if g.mode != ModePuzzle || g.levelIndex >= len(g.layouts) {
		return ""
	}
	return g.layouts[g.levelIndex].Name
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "←/→: Aim | Shift+←/→: Fine | Space: Fire | P: Pause | R: Restart | Q: Quit"
}
