package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is what the platform needs to know about a running game.
type GameState struct {
	Score    int
	GameOver bool
	Won      bool // Board cleared; only meaningful with GameOver
	Paused   bool
}

// EventKind classifies something notable that happened during a tick.
type EventKind int

const (
	EventShot     EventKind = iota // a bullet attached
	EventPop                       // a match was removed
	EventDrop                      // floating cells fell
	EventRowAdded                  // the ceiling came down
	EventCleared                   // the board was emptied
	EventDefeat                    // the board reached the bottom
)

func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventPop:
		return "pop"
	case EventDrop:
		return "drop"
	case EventRowAdded:
		return "row-added"
	case EventCleared:
		return "cleared"
	case EventDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Event is emitted by a game step. Count carries the number of cells involved
// where that makes sense.
type Event struct {
	Kind  EventKind
	Count int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
