package bubbles

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StatePaused       GameStateType = "paused"
	StateLevelCleared GameStateType = "level_cleared"
	StateGameOver     GameStateType = "game_over"
	StateWin          GameStateType = "win"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick         uint64
	Mode         string
	Level        int // 1-indexed in puzzle mode, 0 otherwise
	Score        int
	Stats        Stats
	Aim          float64
	InFlight     bool
	Occupied     int
	AnchoredLeft bool
	BoardHash    uint64
	State        GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.won:
		state = StateWin
	case g.gameOver:
		state = StateGameOver
	case g.levelClear:
		state = StateLevelCleared
	case g.paused:
		state = StatePaused
	}

	return Snapshot{
		Tick:         g.tick,
		Mode:         string(g.mode),
		Level:        g.Level(),
		Score:        g.score,
		Stats:        g.stats,
		Aim:          g.aim,
		InFlight:     g.shot != nil,
		Occupied:     g.board.OccupiedCount(),
		AnchoredLeft: g.board.IsAnchoredLeft(),
		BoardHash:    g.board.Hash(),
		State:        state,
	}
}
