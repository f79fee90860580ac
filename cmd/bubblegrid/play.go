package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/bubblegrid/internal/config"
	"github.com/vovakirdan/bubblegrid/internal/games/bubbles"
	"github.com/vovakirdan/bubblegrid/internal/platform/tui"
	"github.com/vovakirdan/bubblegrid/internal/registry"
)

var (
	flagLayout    string
	flagLayoutDir string
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a game mode",
	Long: `Start playing the specified mode.

Modes:
  bubbles          - Classic: clear the board to win
  bubbles_endless  - Endless: cleared boards refill until the ceiling lands
  bubbles_puzzle   - Puzzle: hand-built layouts played in order

Controls:
  Left/Right, A/D    - Aim
  Shift+Left/Right   - Fine aim
  Space/Up/Enter     - Fire
  P/Esc              - Pause
  R                  - Restart
  Ctrl+S             - Save a screenshot
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Slow ceiling, fewer starting rows
  normal - Default pace, progresses with score
  hard   - Fast ceiling, starts further along
  fixed  - No progression, stays at config's initial level

Examples:
  bubblegrid play bubbles
  bubblegrid play bubbles_endless --difficulty hard
  bubblegrid play bubbles_puzzle --layout hourglass
  bubblegrid play bubbles_puzzle --layout ./my-board.yaml
  bubblegrid play bubbles --config ./my-bubbles.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Puzzle layout id or file to start from")
	playCmd.Flags().StringVar(&flagLayoutDir, "layout-dir", "", "Directory with extra puzzle layouts")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'bubblegrid list' to see available modes.")
		os.Exit(1)
	}

	var p config.DifficultyPreset
	if flagDifficulty != "" {
		p = preset()
	}
	applyGameFlags(p)
	bubbles.SetStartLayout(flagLayout)
	bubbles.SetLayoutDir(flagLayoutDir)

	logger, closeLog := fileLogger()
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		closeLog()
		fail("creating game: %v", err)
	}

	store := openStore(logger)

	runErr := tui.Run(game, store, logger, runtimeConfig())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fail("running game: %v", runErr)
	}
}
